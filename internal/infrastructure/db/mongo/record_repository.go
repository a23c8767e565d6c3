package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamops/opstracker/internal/core/domain"
)

const collectionRecords = "records"

// RecordRepository persists production records, keyed by the application-level
// "id" field like the user collection.
type RecordRepository struct {
	col *mongo.Collection
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{col: db.Collection(collectionRecords)}
}

func (r *RecordRepository) List(ctx context.Context) ([]domain.ProductionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	records := []domain.ProductionRecord{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RecordRepository) ListByUser(ctx context.Context, userID string) ([]domain.ProductionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	records := []domain.ProductionRecord{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RecordRepository) Create(ctx context.Context, rec *domain.ProductionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, rec)
	return err
}

// Update replaces every mutable field of the record. Last write wins; there
// is no version field to compare.
func (r *RecordRepository) Update(ctx context.Context, rec *domain.ProductionRecord) (*domain.ProductionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"userId":                     rec.UserID,
		"userName":                   rec.UserName,
		"processName":                rec.ProcessName,
		"team":                       rec.Team,
		"frequency":                  rec.Frequency,
		"totalUtilization":           rec.TotalUtilization,
		"count":                      rec.Count,
		"actualUtilizationUserInput": rec.ActualUtilizationUserInput,
		"completedDate":              rec.CompletedDate,
		"remarks":                    rec.Remarks,
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"id": rec.ID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRecordNotFound
	}

	var updated domain.ProductionRecord
	if err := r.col.FindOne(ctx, bson.M{"id": rec.ID}).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// DeleteByUser removes every record owned by userID. Zero removed is not an
// error: a user without records is a normal cascade case.
func (r *RecordRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes record queries rely on.
func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "completedDate", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
