package domain

import (
	"slices"
	"sort"
	"strings"

	"resume-builder/internal/model"
)

type Sort string

const (
	SortLastUpdated Sort = "lastUpdatedAt"
	SortCreated     Sort = "createdAt"
	SortName        Sort = "name"
)

func (s Sort) Valid() bool {
	switch s {
	case "", SortLastUpdated, SortCreated, SortName:
		return true
	}
	return false
}

// ListFilter narrows a user's resume list. A document matches when it
// carries every tag in Tags.
type ListFilter struct {
	Tags []string
	Sort Sort
}

func (f ListFilter) Match(r *Resume) bool {
	for _, t := range f.Tags {
		if !slices.Contains(r.Tags, t) {
			return false
		}
	}
	return true
}

// SortResumes orders rs in place. Name sorts ascending, timestamps newest
// first.
func SortResumes(rs []*Resume, s Sort) {
	switch s {
	case SortName:
		sort.SliceStable(rs, func(i, j int) bool {
			return strings.ToLower(rs[i].Name) < strings.ToLower(rs[j].Name)
		})
	case SortCreated:
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })
	default:
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].UpdatedAt.After(rs[j].UpdatedAt) })
	}
}

// Patch lists the fields of a full save. Nil fields are left unchanged.
type Patch struct {
	Name     *string
	Slug     *string
	Tags     *[]string
	Data     *model.ResumeData
	IsPublic *bool
}

// Apply writes the non-nil fields of p onto r.
func (p Patch) Apply(r *Resume) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Slug != nil {
		r.Slug = *p.Slug
	}
	if p.Tags != nil {
		r.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Data != nil {
		r.Data = p.Data.Clone()
	}
	if p.IsPublic != nil {
		r.IsPublic = *p.IsPublic
	}
}
