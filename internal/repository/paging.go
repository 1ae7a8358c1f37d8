package repository

// Page selects one page of a listing. Page numbers start at 1.
type Page struct {
	Page    int
	PerPage int
}

const maxPerPage = 100

func (p Page) normalized() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 12
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

func (p Page) Limit() int {
	return p.normalized().PerPage
}

func (p Page) Offset() int {
	n := p.normalized()
	return (n.Page - 1) * n.PerPage
}
