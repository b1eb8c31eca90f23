package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"jakaprasetya/resume-matcher/internal/models"
)

const (
	embeddingVectorSize = 768 // text-embedding-004 output dimension
	indexChunkSize      = 1000
)

// VectorIndexService keeps candidate resume embeddings in Qdrant so similar
// candidates can be retrieved for a job description without re-embedding the
// whole corpus.
type VectorIndexService interface {
	InitCollection() error
	IndexCandidate(ctx context.Context, candidate *models.Candidate) error
	SearchSimilar(ctx context.Context, queryText string, limit int) ([]CandidateHit, error)
	DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error
}

type CandidateHit struct {
	CandidateID string
	Filename    string
	Score       float32
}

type vectorIndexService struct {
	client         *qdrant.Client
	collectionName string
	embedder       EmbeddingProvider
	chunker        TextChunker
}

func NewVectorIndexService(urlStr, apiKey, collectionName string, embedder EmbeddingProvider) (VectorIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port 6334 unless the URL says otherwise
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorIndexService{
		client:         client,
		collectionName: collectionName,
		embedder:       embedder,
		chunker:        NewTextChunker(),
	}, nil
}

// InitCollection implements VectorIndexService.
func (v *vectorIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Candidate collection already exists")
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     embeddingVectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", v.collectionName)
	return nil
}

// IndexCandidate implements VectorIndexService. The resume text is chunked
// and each chunk is embedded and upserted with the candidate id as payload.
func (v *vectorIndexService) IndexCandidate(ctx context.Context, candidate *models.Candidate) error {
	chunks := v.chunker.Chunk(candidate.RawText, indexChunkSize)
	if len(chunks) == 0 {
		return fmt.Errorf("candidate %s has no text to index", candidate.ID)
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := v.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of candidate %s: %w", i, candidate.ID, err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(uuid.New().ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"candidate_id": candidate.ID.String(),
				"filename":     candidate.Filename,
				"chunk_index":  i,
			}),
		})
	}

	_, err := v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert candidate points: %w", err)
	}

	return nil
}

// SearchSimilar implements VectorIndexService. Chunk hits are deduplicated
// per candidate, keeping the best-scoring chunk.
func (v *vectorIndexService) SearchSimilar(ctx context.Context, queryText string, limit int) ([]CandidateHit, error) {
	embedding, err := v.embedder.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// Over-fetch because several chunks can belong to one candidate.
	fetch := uint64(limit * 4)

	points, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(fetch),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	best := make(map[string]CandidateHit)
	for _, point := range points {
		hit := CandidateHit{Score: point.Score}

		if id, ok := point.Payload["candidate_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				hit.CandidateID = val.StringValue
			}
		}
		if name, ok := point.Payload["filename"]; ok {
			if val, ok := name.GetKind().(*qdrant.Value_StringValue); ok {
				hit.Filename = val.StringValue
			}
		}

		if hit.CandidateID == "" {
			continue
		}

		if existing, ok := best[hit.CandidateID]; !ok || hit.Score > existing.Score {
			best[hit.CandidateID] = hit
		}
	}

	hits := make([]CandidateHit, 0, len(best))
	for _, hit := range best {
		hits = append(hits, hit)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if len(hits) > limit {
		hits = hits[:limit]
	}

	return hits, nil
}

// DeleteCandidate implements VectorIndexService.
func (v *vectorIndexService) DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("candidate_id", candidateID.String()),
		},
	}

	_, err := v.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: v.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete candidate points: %w", err)
	}

	return nil
}
