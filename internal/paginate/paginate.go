// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package paginate provides page-number math and a generic page wrapper
// for listing views. The store performs the LIMIT/OFFSET slicing; this
// package decides which slice to ask for and describes the result.
package paginate

import "strconv"

// DefaultPageSize is the number of items per listing page.
const DefaultPageSize = 10

// Page is a bounded slice of an ordered collection plus navigation metadata.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based page number after clamping
	Size       int
	TotalItems int
	TotalPages int
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// NextNumber returns the next page number (undefined when HasNext is false).
func (p Page[T]) NextNumber() int { return p.Number + 1 }

// PrevNumber returns the previous page number (undefined when HasPrev is false).
func (p Page[T]) PrevNumber() int { return p.Number - 1 }

// ParseNumber interprets a raw page query parameter. Anything that is
// not a positive integer falls back to page 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Request describes the slice to fetch for a requested page: the clamped
// page number and the LIMIT/OFFSET to hand to the store. A requested
// page beyond the last valid page clamps to the last page rather than
// returning an empty slice.
type Request struct {
	Number int
	Limit  int
	Offset int
}

// Plan computes the slice for the requested page number given the total
// item count. size <= 0 uses DefaultPageSize. An empty collection still
// yields page 1 of 1 so templates always have a valid page to describe.
func Plan(requested, size, totalItems int) Request {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	n := requested
	if n < 1 {
		n = 1
	}
	if n > totalPages {
		n = totalPages
	}
	return Request{
		Number: n,
		Limit:  size,
		Offset: (n - 1) * size,
	}
}

// New wraps fetched items with their page metadata.
func New[T any](items []T, req Request, size, totalItems int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	return Page[T]{
		Items:      items,
		Number:     req.Number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
