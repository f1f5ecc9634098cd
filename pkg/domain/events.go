package domain

import (
	"context"
	"time"
)

// QueryKind names the operation a query event belongs to.
type QueryKind string

const (
	QueryEnumerate QueryKind = "enumerate"
	QueryBrave     QueryKind = "brave"
	QueryCautious  QueryKind = "cautious"
	QueryFacets    QueryKind = "facets"
	QueryFacetsSU  QueryKind = "facets_su"
	QuerySieve     QueryKind = "sieve"
)

// QueryEvent describes one query against the session control.
type QueryEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Kind      QueryKind     `json:"kind"`
	Route     []string      `json:"route,omitempty"`
	Models    int           `json:"models"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// RebuildEvent describes a full reconstruction of the session after a program mutation.
type RebuildEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Reason    string        `json:"reason"`
	Atoms     int           `json:"atoms"`
	Duration  time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for navigator observability.
type LifecycleHooks struct {
	OnQueryStart func(context.Context, *QueryEvent)
	OnQueryEnd   func(context.Context, *QueryEvent)
	OnModel      func(context.Context, QueryKind, *Model)
	OnRebuild    func(context.Context, *RebuildEvent)
}
