package editor

import (
	"fmt"
	"sync"
	"time"
)

// Project is a named, owned collection of cards edited and persisted as one
// unit. The owner is assigned server-side; the client never sends it.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Cards        []Card    `json:"cards"`
	ExportName   string    `json:"exportName,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// Store owns the in-session project collection, the active selection and the
// universal-mode flag. Every mutation is synchronous and total: it only
// touches the in-memory model, marks the sync state pending and notifies the
// saver. The durable owner across sessions is the remote store.
type Store struct {
	mu           sync.Mutex
	projects     []*Project
	activeID     string
	activeCardID string
	universal    bool
	state        SyncState

	// onMutate restarts the autosave debounce; onDelete fires the
	// best-effort remote delete. Both are wired once by NewSaver.
	onMutate func()
	onDelete func(projectID string)
}

func NewStore() *Store {
	return &Store{state: StateSynced}
}

// State reports the current sync state.
func (s *Store) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) setState(st SyncState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Universal reports whether appearance propagation is on.
func (s *Store) Universal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.universal
}

// Projects returns a deep copy of the collection, newest first.
func (s *Store) Projects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, copyProject(p))
	}
	return out
}

// ActiveProject returns a copy of the project being edited, if any.
func (s *Store) ActiveProject() (Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(s.activeID)
	if p == nil {
		return Project{}, false
	}
	return copyProject(p), true
}

// ActiveCard returns a copy of the card under edit, if any.
func (s *Store) ActiveCard() (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(s.activeID)
	if p == nil {
		return Card{}, false
	}
	for _, c := range p.Cards {
		if c.ID == s.activeCardID {
			return c, true
		}
	}
	return Card{}, false
}

// Replace installs a loaded collection without marking state dirty. Used at
// startup when the remote list (or the local fallback) is read in.
func (s *Store) Replace(projects []Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = s.projects[:0]
	for i := range projects {
		p := copyProject(&projects[i])
		s.projects = append(s.projects, &p)
	}
	s.activeID = ""
	s.activeCardID = ""
}

// CreateProject prepends a new project with one default card and makes it
// active.
func (s *Store) CreateProject() Project {
	s.mu.Lock()
	card := DefaultCard()
	p := &Project{
		ID:           newID(),
		Name:         fmt.Sprintf("Untitled Project %d", len(s.projects)+1),
		Cards:        []Card{card},
		LastModified: time.Now(),
	}
	s.projects = append([]*Project{p}, s.projects...)
	s.activeID = p.ID
	s.activeCardID = card.ID
	out := copyProject(p)
	s.mu.Unlock()

	s.dirty()
	return out
}

// DeleteProject removes the project locally, unconditionally, and signals the
// remote delete (best effort; failure is only logged, because the local
// removal already succeeded).
func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	kept := s.projects[:0]
	removed := false
	for _, p := range s.projects {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	s.projects = kept
	if s.activeID == id {
		s.activeID = ""
		s.activeCardID = ""
	}
	onDelete := s.onDelete
	s.mu.Unlock()

	if !removed {
		return
	}
	if onDelete != nil {
		onDelete(id)
	}
	s.dirty()
}

// SelectProject loads the project's cards into the editing surface. Unknown
// ids are a no-op and leave the active project unset.
func (s *Store) SelectProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return
	}
	s.activeID = p.ID
	s.activeCardID = ""
	if len(p.Cards) > 0 {
		s.activeCardID = p.Cards[0].ID
	}
}

// SetProjectName renames the active project.
func (s *Store) SetProjectName(name string) {
	s.mu.Lock()
	p := s.findLocked(s.activeID)
	if p == nil {
		s.mu.Unlock()
		return
	}
	p.Name = name
	p.LastModified = time.Now()
	s.mu.Unlock()

	s.dirty()
}

// AddCard appends a new card to the active project and selects it. When
// universal mode is on the new card inherits the active card's appearance.
func (s *Store) AddCard() (Card, bool) {
	s.mu.Lock()
	p := s.findLocked(s.activeID)
	if p == nil {
		s.mu.Unlock()
		return Card{}, false
	}
	card := DefaultCard()
	card.Title = fmt.Sprintf("New Card %d", len(p.Cards)+1)
	if s.universal {
		if active := findCard(p, s.activeCardID); active != nil {
			AppearanceOf(*active).Apply(&card)
		}
	}
	p.Cards = append(p.Cards, card)
	p.LastModified = time.Now()
	s.activeCardID = card.ID
	s.mu.Unlock()

	s.dirty()
	return card, true
}

// DeleteCard removes a card from the active project. Removing the last
// remaining card is a no-op (floor of one). If the deleted card was active,
// the last remaining card becomes active.
func (s *Store) DeleteCard(id string) {
	s.mu.Lock()
	p := s.findLocked(s.activeID)
	if p == nil || len(p.Cards) == 1 {
		s.mu.Unlock()
		return
	}
	kept := p.Cards[:0]
	removed := false
	for _, c := range p.Cards {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	p.Cards = kept
	p.LastModified = time.Now()
	if s.activeCardID == id {
		s.activeCardID = kept[len(kept)-1].ID
	}
	s.mu.Unlock()

	s.dirty()
}

// UpdateCard merges the patch into the targeted card. With universal mode on,
// the appearance subset of the patch is additionally applied to every other
// card in the active project; content fields never propagate. Unknown card
// ids are a no-op.
func (s *Store) UpdateCard(id string, patch CardPatch) {
	s.mu.Lock()
	p := s.findLocked(s.activeID)
	if p == nil {
		s.mu.Unlock()
		return
	}
	target := findCard(p, id)
	if target == nil {
		s.mu.Unlock()
		return
	}
	patch.Apply(target)
	if s.universal {
		appearance := patch.Appearance()
		for i := range p.Cards {
			if p.Cards[i].ID == id {
				continue
			}
			appearance.Apply(&p.Cards[i])
		}
	}
	p.LastModified = time.Now()
	s.mu.Unlock()

	s.dirty()
}

// SelectCard makes a card of the active project current for editing.
func (s *Store) SelectCard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(s.activeID)
	if p == nil || findCard(p, id) == nil {
		return
	}
	s.activeCardID = id
}

// ToggleUniversal flips the propagation mode. Turning it on immediately
// broadcasts the active card's appearance to every other card, one time.
func (s *Store) ToggleUniversal() bool {
	s.mu.Lock()
	s.universal = !s.universal
	on := s.universal
	if on {
		if p := s.findLocked(s.activeID); p != nil {
			if active := findCard(p, s.activeCardID); active != nil {
				appearance := AppearanceOf(*active)
				for i := range p.Cards {
					if p.Cards[i].ID == active.ID {
						continue
					}
					appearance.Apply(&p.Cards[i])
				}
				p.LastModified = time.Now()
			}
		}
	}
	s.mu.Unlock()

	s.dirty()
	return on
}

func (s *Store) dirty() {
	s.setState(StatePending)
	s.mu.Lock()
	onMutate := s.onMutate
	s.mu.Unlock()
	if onMutate != nil {
		onMutate()
	}
}

func (s *Store) findLocked(id string) *Project {
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func findCard(p *Project, id string) *Card {
	for i := range p.Cards {
		if p.Cards[i].ID == id {
			return &p.Cards[i]
		}
	}
	return nil
}

func copyProject(p *Project) Project {
	out := *p
	out.Cards = make([]Card, len(p.Cards))
	copy(out.Cards, p.Cards)
	return out
}
