// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/fedigraph/fedigraph/internal/graph"
	"github.com/fedigraph/fedigraph/internal/store"
	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

// NodeBody is the JSON shape of a graph node with its stored neighborhood.
type NodeBody struct {
	Key        string   `json:"key" example:"109302890571172829" doc:"Canonical node key"`
	ExternalID string   `json:"external_id" example:"alice" doc:"Account handle recorded at creation"`
	Expanded   bool     `json:"expanded" doc:"Whether the neighborhood has been materialised"`
	Neighbors  []string `json:"neighbors" doc:"Keys of directly connected nodes"`
}

type lookupNodeInput struct {
	Handle string `query:"handle" required:"true" example:"alice@example.social" doc:"Account handle to resolve"`
}

type lookupNodeOutput struct {
	Body NodeBody
}

type nodeKeyInput struct {
	Key string `path:"key" example:"42@example.social" doc:"Canonical node key"`
}

type neighborsOutput struct {
	Body struct {
		Key       string   `json:"key"`
		Neighbors []string `json:"neighbors"`
	}
}

// RegisterGraph sets the graph dependency and registers the REST routes.
func (s *Server) RegisterGraph(g *graph.Graph) {
	s.graph = g

	huma.Register(s.api, huma.Operation{
		OperationID: "lookup-node",
		Method:      http.MethodGet,
		Path:        "/api/v1/nodes/lookup",
		Summary:     "Resolve a handle to its graph node, expanding it if needed",
		Tags:        []string{"nodes"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, s.handleLookupNode)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-node-neighbors",
		Method:      http.MethodGet,
		Path:        "/api/v1/nodes/{key}/neighbors",
		Summary:     "Get the stored neighbors of a node without expanding it",
		Tags:        []string{"nodes"},
		Errors:      []int{http.StatusNotFound},
	}, s.handleNodeNeighbors)
}

func (s *Server) handleLookupNode(ctx context.Context, input *lookupNodeInput) (*lookupNodeOutput, error) {
	node, err := s.graph.NodeForHandle(ctx, input.Handle)
	if err != nil {
		if fgerr.IsNotFound(err) {
			return nil, huma.Error404NotFound(fmt.Sprintf("handle %q does not resolve to a unique account", input.Handle))
		}
		slog.Error("node lookup failed", "handle", input.Handle, "error", err)
		return nil, huma.Error502BadGateway("node lookup failed")
	}

	neighbors, err := s.graph.Neighbors(ctx, node.Key)
	if err != nil {
		slog.Error("loading neighbors failed", "node_key", node.Key, "error", err)
		return nil, huma.Error500InternalServerError("loading neighbors failed")
	}

	out := &lookupNodeOutput{}
	out.Body = NodeBody{
		Key:        node.Key,
		ExternalID: node.ExternalID,
		Expanded:   node.Expanded,
		Neighbors:  neighbors,
	}
	if out.Body.Neighbors == nil {
		out.Body.Neighbors = []string{}
	}
	return out, nil
}

func (s *Server) handleNodeNeighbors(ctx context.Context, input *nodeKeyInput) (*neighborsOutput, error) {
	neighbors, err := s.graph.Neighbors(ctx, input.Key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound(fmt.Sprintf("node %q not found", input.Key))
		}
		slog.Error("loading neighbors failed", "node_key", input.Key, "error", err)
		return nil, huma.Error500InternalServerError("loading neighbors failed")
	}

	out := &neighborsOutput{}
	out.Body.Key = input.Key
	out.Body.Neighbors = neighbors
	if out.Body.Neighbors == nil {
		out.Body.Neighbors = []string{}
	}
	return out, nil
}
