package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crisiscorner/internal/app/config"
	"crisiscorner/internal/app/ds"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Код ошибки MongoDB "collection already exists"
const mongoNamespaceExists = 48

// Документ заявки в коллекции
type requestDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	RequestorName  string             `bson:"requestorName"`
	ItemRequested  string             `bson:"itemRequested"`
	CreatedDate    time.Time          `bson:"createdDate"`
	LastEditedDate *time.Time         `bson:"lastEditedDate,omitempty"`
	Status         string             `bson:"status"`
}

func (d requestDocument) toDS() ds.Request {
	r := ds.Request{
		ID:            d.ID.Hex(),
		RequestorName: d.RequestorName,
		ItemRequested: d.ItemRequested,
		CreatedDate:   d.CreatedDate.UTC(),
		Status:        ds.Status(d.Status),
	}
	if d.LastEditedDate != nil {
		t := d.LastEditedDate.UTC()
		r.LastEditedDate = &t
	}
	return r
}

// MongoStore хранилище заявок в MongoDB
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo подключается к MongoDB и проверяет соединение
func OpenMongo(ctx context.Context, cfg config.StoreConfig) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.WithField("database", cfg.MongoDatabase).Info("connected to mongodb")

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection),
	}, nil
}

// NewMongoStore оборачивает уже открытую коллекцию
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{client: coll.Database().Client(), coll: coll}
}

func (s *MongoStore) Insert(ctx context.Context, r *ds.Request) (*ds.Request, error) {
	valid, err := prepareInsert(r)
	if err != nil {
		return nil, err
	}

	doc := requestDocument{
		ID:             primitive.NewObjectID(),
		RequestorName:  valid.RequestorName,
		ItemRequested:  valid.ItemRequested,
		CreatedDate:    valid.CreatedDate,
		LastEditedDate: valid.LastEditedDate,
		Status:         string(valid.Status),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, ds.WrapStore("insert", err)
	}

	out := doc.toDS()
	return &out, nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, id string, upd ds.StatusUpdate) (*ds.Request, error) {
	if err := validateUpdate(upd); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ds.NewNotFoundError(msgRequestNotFound)
	}

	var doc requestDocument
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		statusSet(upd),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ds.NewNotFoundError(msgRequestNotFound)
	}
	if err != nil {
		return nil, ds.WrapStore("update", err)
	}

	out := doc.toDS()
	return &out, nil
}

func (s *MongoStore) UpdateMany(ctx context.Context, ids []string, upd ds.StatusUpdate) (ds.BatchUpdateResult, error) {
	if err := validateUpdate(upd); err != nil {
		return ds.BatchUpdateResult{}, err
	}

	oids := parseObjectIDs(ids)
	if len(oids) == 0 {
		return ds.BatchUpdateResult{}, ds.NewNotFoundError(msgNoneMatched)
	}

	res, err := s.coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": oids}}, statusSet(upd))
	if err != nil {
		return ds.BatchUpdateResult{}, ds.WrapStore("update many", err)
	}
	if res.MatchedCount == 0 {
		return ds.BatchUpdateResult{}, ds.NewNotFoundError(msgNoneMatched)
	}

	return ds.BatchUpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (s *MongoStore) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := parseObjectIDs(ids)
	if len(oids) == 0 {
		return 0, ds.NewNotFoundError(msgNoneMatched)
	}

	res, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, ds.WrapStore("delete many", err)
	}
	if res.DeletedCount == 0 {
		return 0, ds.NewNotFoundError(msgNoneMatched)
	}

	return res.DeletedCount, nil
}

func (s *MongoStore) Find(ctx context.Context, filter ds.RequestFilter, skip, limit int64) ([]ds.Request, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdDate", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		return nil, ds.WrapStore("find", err)
	}
	defer cursor.Close(ctx)

	var docs []requestDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, ds.WrapStore("find", err)
	}

	out := make([]ds.Request, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDS())
	}
	return out, nil
}

func (s *MongoStore) Count(ctx context.Context, filter ds.RequestFilter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, mongoFilter(filter))
	if err != nil {
		return 0, ds.WrapStore("count", err)
	}
	return n, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Name() string {
	return s.coll.Database().Name()
}

// Migrate создаёт коллекцию с $jsonSchema валидатором (или обновляет валидатор) и составной индекс
func (s *MongoStore) Migrate(ctx context.Context) error {
	db := s.coll.Database()

	err := db.CreateCollection(ctx, s.coll.Name(),
		options.CreateCollection().SetValidator(requestSchema()))
	var cmdErr mongo.CommandError
	switch {
	case err == nil:
		log.WithField("collection", s.coll.Name()).Info("collection created")
	case errors.As(err, &cmdErr) && cmdErr.Code == mongoNamespaceExists:
		res := db.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: s.coll.Name()},
			{Key: "validator", Value: requestSchema()},
		})
		if err := res.Err(); err != nil {
			return fmt.Errorf("update collection validator: %w", err)
		}
	default:
		return fmt.Errorf("create collection: %w", err)
	}

	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdDate", Value: -1}},
		Options: options.Index().SetName("status_1_createdDate_-1"),
	})
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func statusSet(upd ds.StatusUpdate) bson.M {
	return bson.M{"$set": bson.M{
		"status":         string(upd.Status),
		"lastEditedDate": upd.LastEditedDate,
	}}
}

func mongoFilter(filter ds.RequestFilter) bson.M {
	if filter.Status == "" {
		return bson.M{}
	}
	return bson.M{"status": string(filter.Status)}
}

// Невалидные ObjectID просто не могут совпасть ни с одним документом
func parseObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return oids
}

func requestSchema() bson.M {
	statuses := make(bson.A, 0, len(ds.Statuses))
	for _, st := range ds.Statuses {
		statuses = append(statuses, string(st))
	}

	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"requestorName", "itemRequested", "createdDate", "status"},
		"properties": bson.M{
			"requestorName":  bson.M{"bsonType": "string", "minLength": 3, "maxLength": 30},
			"itemRequested":  bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"createdDate":    bson.M{"bsonType": "date"},
			"lastEditedDate": bson.M{"bsonType": "date"},
			"status":         bson.M{"enum": statuses},
		},
	}}
}
