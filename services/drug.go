package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"CareLink360/cache"
	"CareLink360/db"
	"CareLink360/models"
	"CareLink360/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Drug catalog, scoped to the doctor that created each entry.

var drugUpdatable = []string{"name", "usage", "sideEffects", "contraindications", "similarDrugs"}

// drugNameFilter matches one name in a doctor's catalog, case-insensitively.
// The same filter backs the uniqueness check and name resolution, so
// "Aspirin" and "aspirin" can never coexist for one doctor.
func drugNameFilter(doctorID primitive.ObjectID, name string) bson.M {
	return bson.M{
		"name":     primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"},
		"doctorId": doctorID,
	}
}

/*
* Drug names are unique per doctor, not globally
 */
func AddDrug(ctx context.Context, doctorID primitive.ObjectID, drug *models.Drug) (*models.Drug, error) {
	if drug.Name == "" || drug.Usage == "" {
		return nil, fmt.Errorf("%w: name and usage are required", util.ErrInvalidInput)
	}

	coll := db.OpenCollections(util.DrugCollection)
	count, err := db.Count(ctx, coll, drugNameFilter(doctorID, drug.Name))
	if err != nil {
		log.Println("Error from count:", err)
		return nil, util.ErrStorage
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: drug %q", util.ErrAlreadyExists, drug.Name)
	}

	drug.ID = primitive.NewObjectID()
	drug.DoctorID = doctorID
	if _, err := db.CreateOne(ctx, coll, drug); err != nil {
		log.Println("Error from createOne:", err)
		return nil, util.ErrStorage
	}
	return drug, nil
}

func GetDrug(ctx context.Context, doctorID, drugID primitive.ObjectID) (*models.Drug, error) {
	key := util.DrugKey + drugID.Hex()
	cached := &models.Drug{}
	if hit, err := cache.Get(ctx, key, cached); err != nil {
		log.Println("Error from cache get:", err)
	} else if hit {
		if cached.DoctorID != doctorID {
			return nil, fmt.Errorf("%w: drug belongs to another doctor", util.ErrForbidden)
		}
		return cached, nil
	}

	drug := &models.Drug{}
	coll := db.OpenCollections(util.DrugCollection)
	err := db.FindOne(ctx, coll, bson.M{"_id": drugID}, drug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: drug not found", util.ErrNotFound)
	}
	if err != nil {
		log.Println("Error from findOne:", err)
		return nil, util.ErrStorage
	}
	if drug.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: drug belongs to another doctor", util.ErrForbidden)
	}

	if err := cache.Set(ctx, key, drug); err != nil {
		log.Println("Error from cache set:", err)
	}
	return drug, nil
}

func ListDrugs(ctx context.Context, doctorID primitive.ObjectID) ([]models.Drug, error) {
	drugs := []models.Drug{}
	coll := db.OpenCollections(util.DrugCollection)
	if err := db.FindAll(ctx, coll, bson.M{"doctorId": doctorID}, &drugs); err != nil {
		log.Println("Error from findAll:", err)
		return nil, util.ErrStorage
	}
	return drugs, nil
}

/*
* Ownership is re-verified against the stored document before any change
 */
func UpdateDrug(ctx context.Context, doctorID, drugID primitive.ObjectID, data map[string]interface{}) (*models.Drug, error) {
	if err := validateUpdates(data, drugUpdatable); err != nil {
		return nil, err
	}

	coll := db.OpenCollections(util.DrugCollection)
	drug := &models.Drug{}
	err := db.FindOne(ctx, coll, bson.M{"_id": drugID}, drug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: drug not found", util.ErrNotFound)
	}
	if err != nil {
		log.Println("Error from findOne:", err)
		return nil, util.ErrStorage
	}
	if drug.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: drug belongs to another doctor", util.ErrForbidden)
	}

	if _, err := db.UpdateOne(ctx, coll, bson.M{"_id": drugID}, bson.M{"$set": bson.M(data)}); err != nil {
		log.Println("Error from updateOne:", err)
		return nil, util.ErrStorage
	}

	if err := cache.Delete(ctx, util.DrugKey+drugID.Hex()); err != nil {
		log.Println("Error from cache delete:", err)
	}

	updated := &models.Drug{}
	if err := db.FindOne(ctx, coll, bson.M{"_id": drugID}, updated); err != nil {
		log.Println("Error from findOne:", err)
		return nil, util.ErrStorage
	}
	return updated, nil
}

func DeleteDrug(ctx context.Context, doctorID, drugID primitive.ObjectID) error {
	coll := db.OpenCollections(util.DrugCollection)
	drug := &models.Drug{}
	err := db.FindOne(ctx, coll, bson.M{"_id": drugID}, drug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: drug not found", util.ErrNotFound)
	}
	if err != nil {
		log.Println("Error from findOne:", err)
		return util.ErrStorage
	}
	if drug.DoctorID != doctorID {
		return fmt.Errorf("%w: drug belongs to another doctor", util.ErrForbidden)
	}

	if _, err := db.DeleteOne(ctx, coll, bson.M{"_id": drugID}); err != nil {
		log.Println("Error from deleteOne:", err)
		return util.ErrStorage
	}
	if err := cache.Delete(ctx, util.DrugKey+drugID.Hex()); err != nil {
		log.Println("Error from cache delete:", err)
	}
	return nil
}

// resolveDrugNames maps drug names to ids within one doctor's catalog.
// Matching is case-insensitive; any miss aborts the whole resolution.
func resolveDrugNames(ctx context.Context, doctorID primitive.ObjectID, names []string) ([]primitive.ObjectID, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: drugs array is required", util.ErrInvalidInput)
	}

	coll := db.OpenCollections(util.DrugCollection)
	ids := []primitive.ObjectID{}
	for _, name := range names {
		drug := &models.Drug{}
		err := db.FindOne(ctx, coll, drugNameFilter(doctorID, name), drug)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: drug %q, please check the drug name", util.ErrNotFound, name)
		}
		if err != nil {
			log.Println("Error from findOne:", err)
			return nil, util.ErrStorage
		}
		ids = append(ids, drug.ID)
	}
	return uniqueIDs(ids), nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := []primitive.ObjectID{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AddDrugs ingests a batch; entries whose name is already taken are reported
// back as skipped rather than failing the batch.
func AddDrugs(ctx context.Context, doctorID primitive.ObjectID, drugs []*models.Drug) ([]models.Drug, []string, error) {
	added := []models.Drug{}
	skipped := []string{}
	for _, drug := range drugs {
		created, err := AddDrug(ctx, doctorID, drug)
		if errors.Is(err, util.ErrAlreadyExists) {
			skipped = append(skipped, drug.Name)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		added = append(added, *created)
	}
	return added, skipped, nil
}
