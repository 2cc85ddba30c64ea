package seo

// FAQ is one question/answer pair.
type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// Breadcrumb is one level of the page trail.
type Breadcrumb struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Bundle is every piece of generated copy for one location/service page.
// Regenerating it from the same pair and catalog yields identical bytes.
type Bundle struct {
	Title          string       `yaml:"title" json:"title"`
	Description    string       `yaml:"description" json:"description"`
	H1             string       `yaml:"h1" json:"h1"`
	IntroParagraph string       `yaml:"introParagraph" json:"introParagraph"`
	LocalCallout   string       `yaml:"localCallout" json:"localCallout"`
	FAQs           []FAQ        `yaml:"faqs" json:"faqs"`
	Breadcrumbs    []Breadcrumb `yaml:"breadcrumbs" json:"breadcrumbs"`
	Keywords       []string     `yaml:"keywords" json:"keywords"`
}

// Bundle generates the full bundle for a page. It returns the zero Bundle
// and the first error if any field fails.
func (e *Engine) Bundle(svc Service, loc Location) (Bundle, error) {
	var (
		b   Bundle
		err error
	)
	if b.Title, err = e.MetaTitle(svc, loc); err != nil {
		return Bundle{}, err
	}
	if b.Description, err = e.MetaDescription(svc, loc); err != nil {
		return Bundle{}, err
	}
	if b.H1, err = e.H1(svc, loc); err != nil {
		return Bundle{}, err
	}
	if b.IntroParagraph, err = e.IntroParagraph(svc, loc); err != nil {
		return Bundle{}, err
	}
	if b.LocalCallout, err = e.LocalCallout(svc, loc); err != nil {
		return Bundle{}, err
	}
	if b.FAQs, err = e.FAQs(svc, loc); err != nil {
		return Bundle{}, err
	}
	if b.Breadcrumbs, err = e.Breadcrumbs(svc, loc); err != nil {
		return Bundle{}, err
	}
	if b.Keywords, err = e.Keywords(svc, loc); err != nil {
		return Bundle{}, err
	}
	return b, nil
}
