package domain

import "time"

// UncategorizedName is displayed for items whose category is missing.
const UncategorizedName = "Uncategorized"

type Service struct {
	ID             string    `json:"id" db:"id"`
	Icon           string    `json:"icon" db:"icon"`
	Name           string    `json:"name" db:"name" validate:"required"`
	Description    string    `json:"description" db:"description" validate:"required"`
	PricePerSecond float64   `json:"price_per_second" db:"price_per_second" validate:"gte=0"`
	Image          string    `json:"image" db:"image"`
	DetailsContent string    `json:"details_content" db:"details_content"`
	VideoURL       string    `json:"video_url" db:"video_url"`
	Features       []string  `json:"features" db:"features"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ServiceSample is an example clip attached to a service.
type ServiceSample struct {
	ID             string    `json:"id" db:"id"`
	ServiceID      string    `json:"service_id" db:"service_id" validate:"required"`
	ServiceName    string    `json:"service_name" db:"service_name"`
	DetailsContent string    `json:"details_content" db:"details_content"`
	VideoURL       string    `json:"video_url" db:"video_url"`
	Features       []string  `json:"features" db:"features"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Portfolio category types.
const (
	PortfolioTypeVideo = "video"
	PortfolioTypeArt   = "art"
)

type PortfolioCategory struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required"`
	Type      string    `json:"type" db:"type" validate:"required,oneof=video art"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PortfolioItem is a video project. Category is joined at read time.
type PortfolioItem struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title" validate:"required"`
	SubCategoryID *string   `json:"sub_category_id" db:"sub_category_id"`
	Category      string    `json:"category" db:"category"`
	Image         string    `json:"image" db:"image"`
	VideoURL      string    `json:"video_url" db:"video_url"`
	Description   string    `json:"description" db:"description"`
	Client        string    `json:"client" db:"client"`
	Date          Date      `json:"date" db:"date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// PortfolioAsset is a still artwork. Category is joined at read time.
type PortfolioAsset struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title" validate:"required"`
	SubCategoryID *string   `json:"sub_category_id" db:"sub_category_id"`
	Category      string    `json:"category" db:"category"`
	ImageURL      string    `json:"image_url" db:"image_url"`
	Description   string    `json:"description" db:"description"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type Testimonial struct {
	ID        string    `json:"id" db:"id"`
	Author    string    `json:"author" db:"author" validate:"required"`
	Company   string    `json:"company" db:"company"`
	Quote     string    `json:"quote" db:"quote" validate:"required"`
	Rating    int       `json:"rating" db:"rating" validate:"min=1,max=5"`
	Avatar    string    `json:"avatar" db:"avatar"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CaseStudy struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" validate:"required"`
	Client    string    `json:"client" db:"client" validate:"required"`
	Challenge string    `json:"challenge" db:"challenge"`
	Solution  string    `json:"solution" db:"solution"`
	Result    string    `json:"result" db:"result"`
	Image     string    `json:"image" db:"image"`
	VideoURL  string    `json:"video_url" db:"video_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type BlogCategory struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BlogPost is an article. Category is joined at read time.
type BlogPost struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title" validate:"required"`
	Excerpt    string    `json:"excerpt" db:"excerpt" validate:"required"`
	Content    string    `json:"content" db:"content"`
	Author     string    `json:"author" db:"author" validate:"required"`
	CategoryID *string   `json:"category_id" db:"category_id"`
	Category   string    `json:"category" db:"category"`
	Image      string    `json:"image" db:"image"`
	ReadTime   string    `json:"read_time" db:"read_time" validate:"required"`
	Date       Date      `json:"date" db:"date"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// HeroSlide is one frame of the home page carousel.
type HeroSlide struct {
	ID              string    `json:"id" db:"id"`
	Tagline1        string    `json:"tagline1" db:"tagline1"`
	Tagline2        string    `json:"tagline2" db:"tagline2"`
	Subtitle        string    `json:"subtitle" db:"subtitle"`
	CTAText         string    `json:"cta_text" db:"cta_text"`
	CTALink         string    `json:"cta_link" db:"cta_link"`
	BackgroundImage string    `json:"background_image" db:"background_image"`
	SortOrder       int       `json:"sort_order" db:"sort_order" validate:"gte=0"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// HomeStat is an animated counter on the home page.
type HomeStat struct {
	ID        string    `json:"id" db:"id"`
	Label     string    `json:"label" db:"label" validate:"required"`
	Value     string    `json:"value" db:"value" validate:"required"`
	SortOrder int       `json:"sort_order" db:"sort_order" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
