package source

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect abre a conexão com o MongoDB de origem e verifica a
// conectividade com um ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to source store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping source store: %w", err)
	}
	return client, nil
}

// Store é a interface de leitura do banco de documentos de origem.
// Somente leitura; nenhuma ordem de enumeração é garantida.
type Store interface {
	// ListDocuments retorna todos os documentos da coleção.
	ListDocuments(ctx context.Context, collection string) ([]Document, error)

	// ListSubDocuments retorna os documentos da sub-coleção de um
	// documento pai, identificado pelo id externo.
	ListSubDocuments(ctx context.Context, parentID, collection string) ([]Document, error)
}

// MongoStore lê documentos de um banco MongoDB.
// As leituras passam por um circuit breaker: uma origem instável
// derruba a fase da migração rapidamente em vez de falhar documento a
// documento. Sub-coleções são representadas como coleção plana
// filtrada pelo id externo do documento pai (campo "reportId").
type MongoStore struct {
	db      *mongo.Database
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
}

// NewMongoStore cria um MongoStore sobre o banco informado.
func NewMongoStore(db *mongo.Database, timeout time.Duration) *MongoStore {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "source-store",
	})
	return &MongoStore{
		db:      db,
		breaker: breaker,
		timeout: timeout,
	}
}

// ListDocuments retorna todos os documentos da coleção.
func (s *MongoStore) ListDocuments(ctx context.Context, collection string) ([]Document, error) {
	return s.find(ctx, collection, bson.M{})
}

// ListSubDocuments retorna os documentos da sub-coleção de um
// documento pai.
func (s *MongoStore) ListSubDocuments(ctx context.Context, parentID, collection string) ([]Document, error) {
	return s.find(ctx, collection, bson.M{"reportId": parentID})
}

// find executa a consulta dentro do circuit breaker e drena o cursor
// para a lista de documentos.
func (s *MongoStore) find(ctx context.Context, collection string, filter bson.M) ([]Document, error) {
	result, err := s.breaker.Execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		cursor, err := s.db.Collection(collection).Find(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
		}
		defer cursor.Close(ctx)

		var docs []Document
		for cursor.Next(ctx) {
			var raw bson.M
			if err := cursor.Decode(&raw); err != nil {
				return nil, fmt.Errorf("failed to decode document: %w", err)
			}
			docs = append(docs, toDocument(raw))
		}
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate collection %s: %w", collection, err)
		}

		return docs, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]Document), nil
}

// toDocument converte o mapa BSON em Document, extraindo o _id como
// identificador externo.
func toDocument(raw bson.M) Document {
	doc := Document{Fields: map[string]any(raw)}

	switch id := raw["_id"].(type) {
	case string:
		doc.ID = id
	case primitive.ObjectID:
		doc.ID = id.Hex()
	}
	delete(doc.Fields, "_id")

	return doc
}

// compile-time interface check
var _ Store = (*MongoStore)(nil)
