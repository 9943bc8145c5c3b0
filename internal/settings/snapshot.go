package settings

import "animateme/internal/domain"

// Snapshot is everything the public site renders from. A published snapshot
// is never mutated; treat it as read-only.
type Snapshot struct {
	Global               domain.GeneralSettings       `json:"global"`
	Content              Content                      `json:"content"`
	Services             []domain.Service             `json:"services"`
	PortfolioItems       []domain.PortfolioItem       `json:"portfolioItems"`
	PortfolioCategories  []domain.PortfolioCategory   `json:"portfolioCategories"`
	PortfolioAssets      []domain.PortfolioAsset      `json:"portfolioAssets"`
	Testimonials         []domain.Testimonial         `json:"testimonials"`
	CaseStudies          []domain.CaseStudy           `json:"caseStudies"`
	BlogPosts            []domain.BlogPost            `json:"blogPosts"`
	BlogCategories       []domain.BlogCategory        `json:"blogCategories"`
	QuoteAnimationTypes  []domain.QuoteAnimationType  `json:"quoteAnimationTypes"`
	QuoteAnimationStyles []domain.QuoteAnimationStyle `json:"quoteAnimationStyles"`
	HomeHeroSlides       []domain.HeroSlide           `json:"homeHeroSlides"`
	HomeStats            []domain.HomeStat            `json:"homeStats"`
}

// Block is the free-form content of one page.
type Block = map[string]interface{}

// Content holds the per-page text blocks.
type Content struct {
	Home          Block `json:"home"`
	Services      Block `json:"services"`
	Portfolio     Block `json:"portfolio"`
	Testimonials  Block `json:"testimonials"`
	Contact       Block `json:"contact"`
	Quote         Block `json:"quote"`
	CaseStudies   Block `json:"caseStudies"`
	Blog          Block `json:"blog"`
	About         Block `json:"about"`
	Disclaimer    Block `json:"disclaimer"`
	PrivacyPolicy Block `json:"privacy_policy"`
}

// pageSlots maps the aggregated page keys to their field in Content.
var pageSlots = []struct {
	page string
	slot func(*Content) *Block
}{
	{domain.PageHome, func(c *Content) *Block { return &c.Home }},
	{domain.PageServices, func(c *Content) *Block { return &c.Services }},
	{domain.PagePortfolio, func(c *Content) *Block { return &c.Portfolio }},
	{domain.PageTestimonials, func(c *Content) *Block { return &c.Testimonials }},
	{domain.PageContact, func(c *Content) *Block { return &c.Contact }},
	{domain.PageQuote, func(c *Content) *Block { return &c.Quote }},
	{domain.PageCaseStudies, func(c *Content) *Block { return &c.CaseStudies }},
	{domain.PageBlog, func(c *Content) *Block { return &c.Blog }},
	{domain.PageAbout, func(c *Content) *Block { return &c.About }},
	{domain.PageDisclaimer, func(c *Content) *Block { return &c.Disclaimer }},
	{domain.PagePrivacyPolicy, func(c *Content) *Block { return &c.PrivacyPolicy }},
}

// Empty returns the snapshot served before the first aggregation: default
// site identity, empty page blocks and empty lists.
func Empty() *Snapshot {
	s := &Snapshot{
		Global:               domain.DefaultGeneralSettings(),
		Services:             []domain.Service{},
		PortfolioItems:       []domain.PortfolioItem{},
		PortfolioCategories:  []domain.PortfolioCategory{},
		PortfolioAssets:      []domain.PortfolioAsset{},
		Testimonials:         []domain.Testimonial{},
		CaseStudies:          []domain.CaseStudy{},
		BlogPosts:            []domain.BlogPost{},
		BlogCategories:       []domain.BlogCategory{},
		QuoteAnimationTypes:  []domain.QuoteAnimationType{},
		QuoteAnimationStyles: []domain.QuoteAnimationStyle{},
		HomeHeroSlides:       []domain.HeroSlide{},
		HomeStats:            []domain.HomeStat{},
	}
	for _, p := range pageSlots {
		*p.slot(&s.Content) = Block{}
	}
	return s
}

// Page returns the block for a page key, or nil when the key is not part of
// the snapshot.
func (s *Snapshot) Page(page string) Block {
	for _, p := range pageSlots {
		if p.page == page {
			return *p.slot(&s.Content)
		}
	}
	return nil
}

// BlogPost finds a post by id.
func (s *Snapshot) BlogPost(id string) (domain.BlogPost, bool) {
	for _, p := range s.BlogPosts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.BlogPost{}, false
}

// AnimationType finds a calculator type by its value key.
func (s *Snapshot) AnimationType(value string) (domain.QuoteAnimationType, bool) {
	for _, t := range s.QuoteAnimationTypes {
		if t.Value == value {
			return t, true
		}
	}
	return domain.QuoteAnimationType{}, false
}

// AnimationStyle finds a calculator style by its value key.
func (s *Snapshot) AnimationStyle(value string) (domain.QuoteAnimationStyle, bool) {
	for _, st := range s.QuoteAnimationStyles {
		if st.Value == value {
			return st, true
		}
	}
	return domain.QuoteAnimationStyle{}, false
}
