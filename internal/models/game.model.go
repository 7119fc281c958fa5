package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type CollectionKey string

const (
	WantToPlayCollection CollectionKey = "wantToPlay"
	FinishedCollection   CollectionKey = "finished"
	AbandonedCollection  CollectionKey = "abandoned"
)

// CollectionKeys lists the collections in tab order.
var CollectionKeys = []CollectionKey{
	WantToPlayCollection,
	FinishedCollection,
	AbandonedCollection,
}

func (k CollectionKey) String() string {
	return string(k)
}

func (k CollectionKey) Valid() bool {
	switch k {
	case WantToPlayCollection, FinishedCollection, AbandonedCollection:
		return true
	}
	return false
}

type InterestLevel string

const (
	InterestLow    InterestLevel = "Low"
	InterestMedium InterestLevel = "Medium"
	InterestHigh   InterestLevel = "High"
)

var InterestLevels = []InterestLevel{InterestLow, InterestMedium, InterestHigh}

type ReleaseStatus string

const (
	StatusAlreadyReleased ReleaseStatus = "Already Released"
	StatusComingSoon      ReleaseStatus = "Coming Soon"
	StatusEarlyAccess     ReleaseStatus = "Early Access"
)

var ReleaseStatuses = []ReleaseStatus{StatusAlreadyReleased, StatusComingSoon, StatusEarlyAccess}

type AbandonReason string

const (
	ReasonBoring          AbandonReason = "Boring"
	ReasonTooHard         AbandonReason = "Too Hard"
	ReasonLostInterest    AbandonReason = "Lost Interest"
	ReasonTechnicalIssues AbandonReason = "Technical Issues"
	ReasonTooLong         AbandonReason = "Too Long"
	ReasonOther           AbandonReason = "Other"
)

var AbandonReasons = []AbandonReason{
	ReasonBoring,
	ReasonTooHard,
	ReasonLostInterest,
	ReasonTechnicalIssues,
	ReasonTooLong,
	ReasonOther,
}

const (
	MinScore = 0
	MaxScore = 5
)

// Record is a single game entry in any of the three collections.
type Record interface {
	RecordID() string
	RecordName() string
	// Value returns the display string of a field by its JSON key.
	Value(field string) string
}

type WantToPlay struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Category       string              `json:"category"`
	Subcategory    string              `json:"subcategory"`
	ReleaseDate    string              `json:"releaseDate"`
	InterestLevel  InterestLevel       `json:"interestLevel"`
	Platforms      string              `json:"platforms"`
	Status         ReleaseStatus       `json:"status"`
	EstimatedHours decimal.NullDecimal `json:"estimatedHours"`
	Notes          string              `json:"notes"`
}

func (g WantToPlay) RecordID() string   { return g.ID }
func (g WantToPlay) RecordName() string { return g.Name }

func (g WantToPlay) Value(field string) string {
	switch field {
	case "id":
		return g.ID
	case "name":
		return g.Name
	case "category":
		return g.Category
	case "subcategory":
		return g.Subcategory
	case "releaseDate":
		return g.ReleaseDate
	case "interestLevel":
		return string(g.InterestLevel)
	case "platforms":
		return g.Platforms
	case "status":
		return string(g.Status)
	case "estimatedHours":
		return HoursString(g.EstimatedHours)
	case "notes":
		return g.Notes
	}
	return ""
}

type Finished struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	Score        int                 `json:"score"`
	DateFinished string              `json:"dateFinished"`
	Platform     string              `json:"platform"`
	HoursSpent   decimal.NullDecimal `json:"hoursSpent"`
	Review       string              `json:"review"`
}

func (g Finished) RecordID() string   { return g.ID }
func (g Finished) RecordName() string { return g.Name }

func (g Finished) Value(field string) string {
	switch field {
	case "id":
		return g.ID
	case "name":
		return g.Name
	case "category":
		return g.Category
	case "score":
		return strconv.Itoa(g.Score)
	case "dateFinished":
		return g.DateFinished
	case "platform":
		return g.Platform
	case "hoursSpent":
		return HoursString(g.HoursSpent)
	case "review":
		return g.Review
	}
	return ""
}

type Abandoned struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	Reason      AbandonReason       `json:"reason"`
	HoursPlayed decimal.NullDecimal `json:"hoursPlayed"`
	Notes       string              `json:"notes"`
}

func (g Abandoned) RecordID() string   { return g.ID }
func (g Abandoned) RecordName() string { return g.Name }

func (g Abandoned) Value(field string) string {
	switch field {
	case "id":
		return g.ID
	case "name":
		return g.Name
	case "category":
		return g.Category
	case "reason":
		return string(g.Reason)
	case "hoursPlayed":
		return HoursString(g.HoursPlayed)
	case "notes":
		return g.Notes
	}
	return ""
}

// HoursString renders an optional hour count, empty when unset.
func HoursString(hours decimal.NullDecimal) string {
	if !hours.Valid {
		return ""
	}
	return hours.Decimal.String()
}
