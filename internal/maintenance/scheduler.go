package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the nightly orphan purge: uploaded images that no project's
// card list references anymore and that are older than the retention window.
// Without it the images table only ever grows, since uploads are immutable
// and the editor never deletes them.
type Scheduler struct {
	c         *cron.Cron
	db        *sql.DB
	retention time.Duration
}

func NewScheduler(db *sql.DB, retention time.Duration) *Scheduler {
	if retention <= 0 {
		retention = 72 * time.Hour
	}
	return &Scheduler{
		c:         cron.New(),
		db:        db,
		retention: retention,
	}
}

// Start initializes cron tasks (nightly at 03:00)
func (s *Scheduler) Start() {
	_, err := s.c.AddFunc("0 3 * * *", func() {
		s.purgeOrphans()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Maintenance scheduler started (orphan purge nightly at 03:00)")
	s.c.Start()
}

func (s *Scheduler) Stop() {
	s.c.Stop()
}

func (s *Scheduler) purgeOrphans() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := s.PurgeOrphans(ctx)
	if err != nil {
		log.Printf("Orphan purge failed: %v", err)
		return
	}
	log.Printf("Orphan purge removed %d images at %s", n, time.Now().Format(time.RFC1123))
}

// PurgeOrphans deletes images past the retention window whose id appears in
// no project's cards JSON. Card image references embed the image id in the
// /api/image?id= URL, so a substring match over the JSONB text is sufficient.
func (s *Scheduler) PurgeOrphans(ctx context.Context) (int64, error) {
	const q = `
DELETE FROM images i
WHERE i.created_at < now() - $1::interval
  AND NOT EXISTS (
      SELECT 1 FROM projects p
      WHERE p.cards::text LIKE '%' || i.id || '%'
  );`

	res, err := s.db.ExecContext(ctx, q, fmt.Sprintf("%d hours", int(s.retention.Hours())))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
