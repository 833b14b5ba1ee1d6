package repository

import (
	"lawyerconnect/database"
	"lawyerconnect/database/repository/durable"
	"lawyerconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names in the lawyerconnect database.
const (
	UsersCollection           = "users"
	ComplaintsCollection      = "complaints"
	LegalCategoriesCollection = "legal_categories"
	LegalArticlesCollection   = "legal_articles"
)

// Durable bundles the persistent collections. Each is served by MongoDB until
// the first connectivity failure and by its in-process shadow afterwards.
type Durable struct {
	Accounts   durable.Collection[models.Account]
	Complaints durable.Collection[models.Complaint]
	Categories durable.Collection[models.LegalCategory]
	Articles   durable.Collection[models.LegalArticle]

	Switch *durable.Switch
}

// NewDurable wires the collections over conn. A nil connector starts the tier
// already degraded, which is how tests and database-less runs use it.
func NewDurable(conn *database.Connector, logger *zap.Logger) *Durable {
	sw := durable.NewSwitch(logger)

	accounts := durable.NewShadow[models.Account](UsersCollection, "email")
	complaints := durable.NewShadow[models.Complaint](ComplaintsCollection, "complaintNumber")
	categories := durable.NewShadow[models.LegalCategory](LegalCategoriesCollection, "name")
	articles := durable.NewShadow[models.LegalArticle](LegalArticlesCollection)

	if conn == nil {
		sw.Trip(models.ErrStoreUnavailable)
		return &Durable{
			Accounts:   durable.NewFallback[models.Account](nil, accounts, sw),
			Complaints: durable.NewFallback[models.Complaint](nil, complaints, sw),
			Categories: durable.NewFallback[models.LegalCategory](nil, categories, sw),
			Articles:   durable.NewFallback[models.LegalArticle](nil, articles, sw),
			Switch:     sw,
		}
	}

	return &Durable{
		Accounts: durable.NewFallback[models.Account](
			durable.NewMongo[models.Account](conn, UsersCollection, userIndexes(), logger), accounts, sw),
		Complaints: durable.NewFallback[models.Complaint](
			durable.NewMongo[models.Complaint](conn, ComplaintsCollection, complaintIndexes(), logger), complaints, sw),
		Categories: durable.NewFallback[models.LegalCategory](
			durable.NewMongo[models.LegalCategory](conn, LegalCategoriesCollection, categoryIndexes(), logger), categories, sw),
		Articles: durable.NewFallback[models.LegalArticle](
			durable.NewMongo[models.LegalArticle](conn, LegalArticlesCollection, articleIndexes(), logger), articles, sw),
		Switch: sw,
	}
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}
}

func complaintIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "complaintNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
}

func categoryIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

func articleIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
}
