package handlers

import (
	"time"

	"media-indexer/internal/database"
	"media-indexer/internal/indexer"
	"media-indexer/internal/metadata"
	"media-indexer/internal/startup"
)

type Handlers struct {
	db        *database.Database
	indexer   *indexer.Indexer
	scanner   *metadata.Scanner
	resolver  *metadata.Resolver
	mediaDir  string
	posterDir string
	startTime time.Time
}

func New(db *database.Database, idx *indexer.Indexer, scanner *metadata.Scanner, resolver *metadata.Resolver, config *startup.Config) *Handlers {
	return &Handlers{
		db:        db,
		indexer:   idx,
		scanner:   scanner,
		resolver:  resolver,
		mediaDir:  config.MediaDir,
		posterDir: config.PosterDir,
		startTime: time.Now(),
	}
}
