package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
	"github.com/algasur/algas-api/pkg/config"
)

var _ repository.ProyeccionRepository = (*ProyeccionRepo)(nil)

// ProyeccionRepo almacén documental de proyecciones de producción.
// Clave natural (especie, anio, mes); las escrituras son siempre upsert,
// de modo que refrescar proyecciones nunca acumula documentos duplicados.
type ProyeccionRepo struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewProyeccionRepository conecta al servidor Mongo y verifica con ping.
func NewProyeccionRepository(ctx context.Context, cfg config.MongoConfig) (*ProyeccionRepo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("conectando a mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &ProyeccionRepo{
		client:   client,
		dbName:   cfg.DBName,
		collName: cfg.Collection,
	}, nil
}

func (r *ProyeccionRepo) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Upsert crea o reemplaza el punto proyectado de (especie, anio, mes).
// La última escritura gana; no se conserva historial.
func (r *ProyeccionRepo) Upsert(ctx context.Context, p entity.Proyeccion) error {
	filter := bson.M{"especie": p.Especie, "anio": p.Anio, "mes": p.Mes}
	update := bson.M{"$set": bson.M{"proyeccion_ton": p.ProyeccionTon}}
	_, err := r.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert proyeccion: %w", err)
	}
	return nil
}

// TotalesPorMes suma proyeccion_ton de todas las especies para el año dado.
// Los meses sin documentos no aparecen en el mapa resultante.
func (r *ProyeccionRepo) TotalesPorMes(ctx context.Context, anio int) (map[int]float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"anio": anio}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$mes",
			"total": bson.M{"$sum": "$proyeccion_ton"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("agregando proyecciones: %w", err)
	}
	defer cursor.Close(ctx)

	totales := make(map[int]float64)
	for cursor.Next(ctx) {
		var doc struct {
			Mes   int     `bson:"_id"`
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decodificando agregado: %w", err)
		}
		totales[doc.Mes] = doc.Total
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor proyecciones: %w", err)
	}
	return totales, nil
}

// Close cierra la conexión con el servidor Mongo.
func (r *ProyeccionRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
