package exporter

import (
	"context"
	"errors"
)

// Client is the minimal graph database contract the exporter needs.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

var ErrMissingURI = errors.New("neo4j URI is required")
