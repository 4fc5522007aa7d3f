package models

// Entry is a single diary record. Date is free-form text supplied by the
// client; Image holds an object key or URL, also uninterpreted.
type Entry struct {
	ID     string
	Title  string
	Writer string
	Date   string
	Text   string
	Image  string
}

// EntryPatch carries a partial update. Nil fields are left unchanged.
type EntryPatch struct {
	Title  *string
	Writer *string
	Date   *string
	Text   *string
	Image  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p *EntryPatch) IsEmpty() bool {
	return p == nil || (p.Title == nil && p.Writer == nil && p.Date == nil && p.Text == nil && p.Image == nil)
}

// Apply copies the supplied fields onto e.
func (p *EntryPatch) Apply(e *Entry) {
	if p == nil {
		return
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Writer != nil {
		e.Writer = *p.Writer
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Text != nil {
		e.Text = *p.Text
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
}

// Token is an issued bearer credential.
type Token struct {
	AccessToken string
	TokenType   string
}
