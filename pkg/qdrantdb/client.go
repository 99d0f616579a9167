package qdrantdb

import (
	"github.com/qdrant/go-client/qdrant"
)

type ProjectClient struct {
	Client *qdrant.Client
}

func NewClient(host string, port int) (*ProjectClient, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port, // gRPC port
	})
	if err != nil {
		return nil, err
	}
	return &ProjectClient{Client: client}, err
}
