package repos

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"fruitstand/internal/domain"
	applog "fruitstand/internal/log"
)

type fruitDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       *string            `bson:"name,omitempty"`
	Color      *string            `bson:"color,omitempty"`
	ReadyToEat bool               `bson:"readyToEat"`
}

func (d fruitDoc) fruit() domain.Fruit {
	return domain.Fruit{ID: d.ID.Hex(), Name: d.Name, Color: d.Color, ReadyToEat: d.ReadyToEat}
}

func newDoc(in domain.FruitInput) fruitDoc {
	return fruitDoc{Name: in.Name, Color: in.Color, ReadyToEat: in.ReadyToEat}
}

// MongoStore keeps fruits in one collection. Documents are listed in _id
// order, which is creation order for client-generated ObjectIDs.
type MongoStore struct {
	client  *mongo.Client
	col     *mongo.Collection
	timeout timeoutFunc
}

func OpenMongo(ctx context.Context, uri string, opts Options) (*MongoStore, error) {
	opts = opts.withDefaults()
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse mongodb uri: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = opts.Database
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetPoolMonitor(poolMonitor()).
		SetServerMonitor(serverMonitor())

	cctx, cancel := context.WithTimeout(ctx, 2*opts.Timeout)
	defer cancel()
	client, err := mongo.Connect(cctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	applog.Event("db.open", nil, map[string]any{"backend": "mongodb", "uri": redact(uri), "database": dbName})

	return &MongoStore{
		client:  client,
		col:     client.Database(dbName).Collection(collectionName),
		timeout: withTimeout(opts.Timeout),
	}, nil
}

func poolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{Event: func(e *event.PoolEvent) {
		switch e.Type {
		case event.ConnectionCreated:
			applog.Event("db.conn.open", nil, map[string]any{"address": e.Address, "conn_id": e.ConnectionID})
		case event.ConnectionClosed:
			applog.Event("db.conn.close", nil, map[string]any{"address": e.Address, "conn_id": e.ConnectionID, "reason": e.Reason})
		case event.PoolCleared:
			applog.Event("db.pool.cleared", nil, map[string]any{"address": e.Address})
		}
	}}
}

func serverMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
			applog.Event("db.heartbeat.fail", e.Failure, map[string]any{"conn_id": e.ConnectionID})
		},
	}
}

// Collection exposes the underlying collection for tests.
func (s *MongoStore) Collection() *mongo.Collection { return s.col }

func (s *MongoStore) List(ctx context.Context) ([]domain.Fruit, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []fruitDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Fruit, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.fruit())
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (domain.Fruit, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Fruit{}, err
	}
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	var d fruitDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Fruit{}, domain.ErrNotFound
		}
		return domain.Fruit{}, err
	}
	return d.fruit(), nil
}

func (s *MongoStore) Create(ctx context.Context, in domain.FruitInput) (domain.Fruit, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	d := newDoc(in)
	d.ID = primitive.NewObjectID()
	if _, err := s.col.InsertOne(ctx, d); err != nil {
		return domain.Fruit{}, err
	}
	return d.fruit(), nil
}

func (s *MongoStore) CreateMany(ctx context.Context, ins []domain.FruitInput) ([]domain.Fruit, error) {
	if len(ins) == 0 {
		return []domain.Fruit{}, nil
	}
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	docs := make([]interface{}, 0, len(ins))
	out := make([]domain.Fruit, 0, len(ins))
	for _, in := range ins {
		d := newDoc(in)
		d.ID = primitive.NewObjectID()
		docs = append(docs, d)
		out = append(out, d.fruit())
	}
	if _, err := s.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoStore) Replace(ctx context.Context, id string, in domain.FruitInput) (domain.Fruit, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Fruit{}, err
	}
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": oid}, newDoc(in))
	if err != nil {
		return domain.Fruit{}, err
	}
	if res.MatchedCount == 0 {
		return domain.Fruit{}, domain.ErrNotFound
	}
	d := newDoc(in)
	d.ID = oid
	return d.fruit(), nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	res, err := s.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	err := s.client.Disconnect(ctx)
	applog.Event("db.close", err, map[string]any{"backend": "mongodb"})
	return err
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}
