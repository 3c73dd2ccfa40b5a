// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ResearchStatus tracks where a research project stands.
type ResearchStatus string

const (
	ResearchPlanned    ResearchStatus = "PLANNED"
	ResearchInProgress ResearchStatus = "IN_PROGRESS"
	ResearchCompleted  ResearchStatus = "COMPLETED"
	ResearchSuspended  ResearchStatus = "SUSPENDED"
)

// PublicationForm holds the form values for a publication project.
// Nil pointers mean the field was left empty.
type PublicationForm struct {
	PublicationDate   *time.Time `json:"publicationDate,omitempty" yaml:"publication_date,omitempty"`
	PublicationSource string     `json:"publicationSource,omitempty" yaml:"publication_source,omitempty"`
	DOIISBN           string     `json:"doiIsbn,omitempty" yaml:"doi_isbn,omitempty"`
	StartPage         *int       `json:"startPage,omitempty" yaml:"start_page,omitempty"`
	EndPage           *int       `json:"endPage,omitempty" yaml:"end_page,omitempty"`
	JournalVolume     *int       `json:"journalVolume,omitempty" yaml:"journal_volume,omitempty"`
	IssueNumber       *int       `json:"issueNumber,omitempty" yaml:"issue_number,omitempty"`

	// Authors lists author ids in byline order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// PatentForm holds the form values for a patent project.
type PatentForm struct {
	PrimaryAuthorID    string     `json:"primaryAuthorId,omitempty" yaml:"primary_author_id,omitempty"`
	RegistrationNumber string     `json:"registrationNumber,omitempty" yaml:"registration_number,omitempty"`
	RegistrationDate   *time.Time `json:"registrationDate,omitempty" yaml:"registration_date,omitempty"`
	IssuingAuthority   string     `json:"issuingAuthority,omitempty" yaml:"issuing_authority,omitempty"`

	// CoInventors excludes PrimaryAuthorID; the form enforces this.
	CoInventors []string `json:"coInventors,omitempty" yaml:"co_inventors,omitempty"`
}

// ResearchForm holds the form values for a research project.
type ResearchForm struct {
	ParticipantIDs []string       `json:"participantIds,omitempty" yaml:"participant_ids,omitempty"`
	Budget         *float64       `json:"budget,omitempty" yaml:"budget,omitempty"`
	StartDate      *time.Time     `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	EndDate        *time.Time     `json:"endDate,omitempty" yaml:"end_date,omitempty"`
	Status         ResearchStatus `json:"status,omitempty" yaml:"status,omitempty"`
	FundingSource  string         `json:"fundingSource,omitempty" yaml:"funding_source,omitempty"`
}

// TypedForm carries the form values for at most one typed record variant.
type TypedForm struct {
	Publication *PublicationForm `json:"publication,omitempty" yaml:"publication,omitempty"`
	Patent      *PatentForm      `json:"patent,omitempty" yaml:"patent,omitempty"`
	Research    *ResearchForm    `json:"research,omitempty" yaml:"research,omitempty"`
}

// Empty reports whether no variant carries values.
func (f *TypedForm) Empty() bool {
	return f == nil || (f.Publication == nil && f.Patent == nil && f.Research == nil)
}

// PublicationRequest is the create/update payload for a publication record.
type PublicationRequest struct {
	// ID is set only on update.
	ID                string    `json:"id,omitempty"`
	ProjectID         string    `json:"projectId"`
	PublicationDate   time.Time `json:"publicationDate"`
	PublicationSource string    `json:"publicationSource"`
	DOIISBN           string    `json:"doiIsbn"`
	StartPage         int       `json:"startPage"`
	EndPage           int       `json:"endPage"`
	JournalVolume     int       `json:"journalVolume"`
	IssueNumber       int       `json:"issueNumber"`
	Authors           []string  `json:"authors"`
}

// PatentRequest is the create/update payload for a patent record.
type PatentRequest struct {
	ID                 string    `json:"id,omitempty"`
	ProjectID          string    `json:"projectId"`
	PrimaryAuthorID    string    `json:"primaryAuthorId"`
	RegistrationNumber string    `json:"registrationNumber"`
	RegistrationDate   time.Time `json:"registrationDate"`
	IssuingAuthority   string    `json:"issuingAuthority"`
	CoInventors        []string  `json:"coInventors"`
}

// ResearchRequest is the create/update payload for a research record.
type ResearchRequest struct {
	ID             string         `json:"id,omitempty"`
	ProjectID      string         `json:"projectId"`
	ParticipantIDs []string       `json:"participantIds"`
	Budget         float64        `json:"budget"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        *time.Time     `json:"endDate,omitempty"`
	Status         ResearchStatus `json:"status"`
	FundingSource  string         `json:"fundingSource"`
}

// Publication is a persisted publication record.
type Publication struct {
	ID                string    `json:"id" yaml:"id"`
	ProjectID         string    `json:"projectId" yaml:"project_id"`
	PublicationDate   time.Time `json:"publicationDate" yaml:"publication_date"`
	PublicationSource string    `json:"publicationSource" yaml:"publication_source"`
	DOIISBN           string    `json:"doiIsbn" yaml:"doi_isbn"`
	StartPage         int       `json:"startPage" yaml:"start_page"`
	EndPage           int       `json:"endPage" yaml:"end_page"`
	JournalVolume     int       `json:"journalVolume" yaml:"journal_volume"`
	IssueNumber       int       `json:"issueNumber" yaml:"issue_number"`
	Authors           []string  `json:"authors" yaml:"authors"`
}

// Patent is a persisted patent record.
type Patent struct {
	ID                 string    `json:"id" yaml:"id"`
	ProjectID          string    `json:"projectId" yaml:"project_id"`
	PrimaryAuthorID    string    `json:"primaryAuthorId" yaml:"primary_author_id"`
	RegistrationNumber string    `json:"registrationNumber" yaml:"registration_number"`
	RegistrationDate   time.Time `json:"registrationDate" yaml:"registration_date"`
	IssuingAuthority   string    `json:"issuingAuthority" yaml:"issuing_authority"`
	CoInventors        []string  `json:"coInventors" yaml:"co_inventors"`
}

// Research is a persisted research record.
type Research struct {
	ID             string         `json:"id" yaml:"id"`
	ProjectID      string         `json:"projectId" yaml:"project_id"`
	ParticipantIDs []string       `json:"participantIds" yaml:"participant_ids"`
	Budget         float64        `json:"budget" yaml:"budget"`
	StartDate      time.Time      `json:"startDate" yaml:"start_date"`
	EndDate        *time.Time     `json:"endDate,omitempty" yaml:"end_date,omitempty"`
	Status         ResearchStatus `json:"status" yaml:"status"`
	FundingSource  string         `json:"fundingSource" yaml:"funding_source"`
}

// TypedRecord is the persisted typed record of one project. Exactly one of
// the variant pointers is set and it matches Type.
type TypedRecord struct {
	Type        ProjectType  `json:"type" yaml:"type"`
	Publication *Publication `json:"publication,omitempty" yaml:"publication,omitempty"`
	Patent      *Patent      `json:"patent,omitempty" yaml:"patent,omitempty"`
	Research    *Research    `json:"research,omitempty" yaml:"research,omitempty"`
}

// ID returns the id of whichever variant is set.
func (r *TypedRecord) ID() string {
	switch {
	case r == nil:
		return ""
	case r.Publication != nil:
		return r.Publication.ID
	case r.Patent != nil:
		return r.Patent.ID
	case r.Research != nil:
		return r.Research.ID
	}
	return ""
}
