package mongodb

import (
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

var (
	collOperations      *mgo.Collection
	collMetadataChanges *mgo.Collection
)

const (
	maxCountOfResults = 5000
)

func initCollections() {
	getCollection(tbOperations)
	getCollection(tbMetadataChanges)
}

func deinitCollections() {
	collOperations = nil
	collMetadataChanges = nil
}

func getOrInitCollection(table string, collection **mgo.Collection, indexKey ...string) *mgo.Collection {
	if *collection == nil {
		*collection = database.C(table)
		if len(indexKey) != 0 {
			(*collection).EnsureIndexKey(indexKey...)
		}
	}
	return *collection
}

func getCollection(table string) *mgo.Collection {
	switch table {
	case tbOperations:
		return getOrInitCollection(table, &collOperations, "account", "timestamp")
	case tbMetadataChanges:
		return getOrInitCollection(table, &collMetadataChanges, "timestamp")
	default:
		panic("unknown table " + table)
	}
}

// --------------- operation journal --------------------------------

// AddOperation record a committed deposit or redemption.
func AddOperation(op *MgoOperation) error {
	if op.Key == "" {
		op.Key = bson.NewObjectId().Hex()
	}
	return mgoError(getCollection(tbOperations).Insert(op))
}

// FindOperation find one journal entry by key.
func FindOperation(key string) (*MgoOperation, error) {
	var result MgoOperation
	err := getCollection(tbOperations).FindId(key).One(&result)
	if err != nil {
		return nil, mgoError(err)
	}
	return &result, nil
}

// FindOperationHistory find an account's journal entries with paging.
func FindOperationHistory(account string, offset, limit int) ([]*MgoOperation, error) {
	result := make([]*MgoOperation, 0, 20)
	q := getCollection(tbOperations).Find(bson.M{"account": account}).Sort("-timestamp").Skip(offset).Limit(limit)
	err := q.All(&result)
	if err != nil {
		return nil, mgoError(err)
	}
	return result, nil
}

// CountOperations count journal entries of a given type.
func CountOperations(opType string) (int, error) {
	count, err := getCollection(tbOperations).Find(bson.M{"type": opType}).Count()
	if err != nil {
		return 0, mgoError(err)
	}
	return count, nil
}

// --------------- metadata changes --------------------------------

// AddMetadataChange record a committed metadata configuration.
func AddMetadataChange(mc *MgoMetadataChange) error {
	if mc.Key == "" {
		mc.Key = bson.NewObjectId().Hex()
	}
	return mgoError(getCollection(tbMetadataChanges).Insert(mc))
}

// FindLatestMetadataChanges find the most recent metadata changes.
func FindLatestMetadataChanges(limit int) ([]*MgoMetadataChange, error) {
	if limit <= 0 || limit > maxCountOfResults {
		limit = 20
	}
	result := make([]*MgoMetadataChange, 0, 20)
	q := getCollection(tbMetadataChanges).Find(nil).Sort("-timestamp").Limit(limit)
	err := q.All(&result)
	if err != nil {
		return nil, mgoError(err)
	}
	return result, nil
}
