package editor

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Orientation of a card's image/content flow.
const (
	OrientationHorizontalLeft  = "horizontal-left"
	OrientationHorizontalRight = "horizontal-right"
	OrientationVertical        = "vertical"
)

// Card is one printable tile. Field names match the wire format the server
// round-trips as JSONB.
type Card struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Text             string `json:"text"`
	ImageURL         string `json:"imageUrl"`
	Caption          string `json:"caption"`
	Orientation      string `json:"orientation"`
	ImagePosition    string `json:"imagePosition"`
	Template         string `json:"template"`
	ContentPadding   int    `json:"contentPadding"`
	VerticalAlign    string `json:"verticalAlign"`
	BorderWidth      int    `json:"borderWidth"`
	BorderRadius     int    `json:"borderRadius"`
	BorderStyle      string `json:"borderStyle"`
	BorderColor      string `json:"borderColor"`
	CardBg           string `json:"cardBg"`
	TextColor        string `json:"textColor"`
	AccentColor      string `json:"accentColor"`
	ImageRadius      int    `json:"imageRadius"`
	CardPadding      int    `json:"cardPadding"`
	TitleSize        int    `json:"titleSize"`
	TitleFont        string `json:"titleFont"`
	TextSize         int    `json:"textSize"`
	TextFont         string `json:"textFont"`
	CardHeight       int    `json:"cardHeight"`
	SelectedForPrint bool   `json:"selectedForPrint"`
}

// CardPatch is a partial update: nil fields are left untouched by Apply.
type CardPatch struct {
	Title            *string
	Text             *string
	ImageURL         *string
	Caption          *string
	Orientation      *string
	ImagePosition    *string
	Template         *string
	ContentPadding   *int
	VerticalAlign    *string
	BorderWidth      *int
	BorderRadius     *int
	BorderStyle      *string
	BorderColor      *string
	CardBg           *string
	TextColor        *string
	AccentColor      *string
	ImageRadius      *int
	CardPadding      *int
	TitleSize        *int
	TitleFont        *string
	TextSize         *int
	TextFont         *string
	CardHeight       *int
	SelectedForPrint *bool
}

// Apply merges the set fields of the patch into c.
func (p CardPatch) Apply(c *Card) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
	if p.Caption != nil {
		c.Caption = *p.Caption
	}
	if p.Orientation != nil {
		c.Orientation = *p.Orientation
	}
	if p.ImagePosition != nil {
		c.ImagePosition = *p.ImagePosition
	}
	if p.Template != nil {
		c.Template = *p.Template
	}
	if p.ContentPadding != nil {
		c.ContentPadding = *p.ContentPadding
	}
	if p.VerticalAlign != nil {
		c.VerticalAlign = *p.VerticalAlign
	}
	if p.BorderWidth != nil {
		c.BorderWidth = *p.BorderWidth
	}
	if p.BorderRadius != nil {
		c.BorderRadius = *p.BorderRadius
	}
	if p.BorderStyle != nil {
		c.BorderStyle = *p.BorderStyle
	}
	if p.BorderColor != nil {
		c.BorderColor = *p.BorderColor
	}
	if p.CardBg != nil {
		c.CardBg = *p.CardBg
	}
	if p.TextColor != nil {
		c.TextColor = *p.TextColor
	}
	if p.AccentColor != nil {
		c.AccentColor = *p.AccentColor
	}
	if p.ImageRadius != nil {
		c.ImageRadius = *p.ImageRadius
	}
	if p.CardPadding != nil {
		c.CardPadding = *p.CardPadding
	}
	if p.TitleSize != nil {
		c.TitleSize = *p.TitleSize
	}
	if p.TitleFont != nil {
		c.TitleFont = *p.TitleFont
	}
	if p.TextSize != nil {
		c.TextSize = *p.TextSize
	}
	if p.TextFont != nil {
		c.TextFont = *p.TextFont
	}
	if p.CardHeight != nil {
		c.CardHeight = *p.CardHeight
	}
	if p.SelectedForPrint != nil {
		c.SelectedForPrint = *p.SelectedForPrint
	}
}

// Appearance strips the patch down to the fixed universal key set. Content
// fields (title, text, image, caption) and the accent color never propagate.
func (p CardPatch) Appearance() CardPatch {
	return CardPatch{
		Template:       p.Template,
		ContentPadding: p.ContentPadding,
		VerticalAlign:  p.VerticalAlign,
		BorderWidth:    p.BorderWidth,
		BorderRadius:   p.BorderRadius,
		BorderStyle:    p.BorderStyle,
		BorderColor:    p.BorderColor,
		CardBg:         p.CardBg,
		TextColor:      p.TextColor,
		ImageRadius:    p.ImageRadius,
		CardPadding:    p.CardPadding,
		TitleSize:      p.TitleSize,
		TitleFont:      p.TitleFont,
		TextSize:       p.TextSize,
		TextFont:       p.TextFont,
		CardHeight:     p.CardHeight,
	}
}

// AppearanceOf snapshots a card's universal key set as a fully-populated
// appearance patch, used for the one-time broadcast when universal mode turns
// on and for new cards created while it is on.
func AppearanceOf(c Card) CardPatch {
	return CardPatch{
		Template:       &c.Template,
		ContentPadding: &c.ContentPadding,
		VerticalAlign:  &c.VerticalAlign,
		BorderWidth:    &c.BorderWidth,
		BorderRadius:   &c.BorderRadius,
		BorderStyle:    &c.BorderStyle,
		BorderColor:    &c.BorderColor,
		CardBg:         &c.CardBg,
		TextColor:      &c.TextColor,
		ImageRadius:    &c.ImageRadius,
		CardPadding:    &c.CardPadding,
		TitleSize:      &c.TitleSize,
		TitleFont:      &c.TitleFont,
		TextSize:       &c.TextSize,
		TextFont:       &c.TextFont,
		CardHeight:     &c.CardHeight,
	}
}

// DefaultCard returns a fresh card with the pastel template defaults.
func DefaultCard() Card {
	return Card{
		ID:               newID(),
		Title:            "My Presentation Card",
		Text:             "Enter your content here. This card can hold an optional image, a caption, and a block of text.",
		Orientation:      OrientationHorizontalLeft,
		ImagePosition:    "center center",
		Template:         "template-pastel",
		ContentPadding:   40,
		VerticalAlign:    "center",
		BorderWidth:      2,
		BorderRadius:     16,
		BorderStyle:      "solid",
		BorderColor:      "#fec89a",
		CardBg:           "#fffcf2",
		TextColor:        "#403d39",
		AccentColor:      "#eb5e28",
		ImageRadius:      8,
		TitleSize:        40,
		TitleFont:        "inherit",
		TextSize:         19,
		TextFont:         "inherit",
		CardHeight:       530,
		SelectedForPrint: true,
	}
}

var idCounter atomic.Uint64

// newID produces an opaque, time-derived id. The counter suffix keeps ids
// unique when several are minted in the same nanosecond tick.
func newID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36) + strconv.FormatUint(idCounter.Add(1), 36)
}
