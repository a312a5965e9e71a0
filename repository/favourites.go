package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/yashrajoria/shop-backend/apperrors"
	"github.com/yashrajoria/shop-backend/models"
)

// FavouriteRepository stores which products a user marked as favourite.
type FavouriteRepository interface {
	List(ctx context.Context, userID string) ([]models.FavouriteRecord, error)
	// Add is idempotent: adding a favourite twice keeps the first record.
	Add(ctx context.Context, userID string, productID int) (*models.FavouriteRecord, error)
	Remove(ctx context.Context, userID string, productID int) error
}

// DynamoDBAPI is the subset of the DynamoDB client the favourites table needs.
type DynamoDBAPI interface {
	dynamodb.QueryAPIClient
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoFavouriteRepository keeps favourites in a table keyed by user_id
// (hash) and product_id (range).
type DynamoFavouriteRepository struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoFavouriteRepository(client DynamoDBAPI, table string) *DynamoFavouriteRepository {
	return &DynamoFavouriteRepository{client: client, table: table}
}

type ddbFavourite struct {
	UserID    string `dynamodbav:"user_id"`
	ProductID int    `dynamodbav:"product_id"`
	ID        string `dynamodbav:"id"`
	CreatedAt string `dynamodbav:"created_at"`
}

func (f ddbFavourite) toModel() models.FavouriteRecord {
	rec := models.FavouriteRecord{ID: f.ID, UserID: f.UserID, ProductID: f.ProductID}
	if t, err := time.Parse(time.RFC3339, f.CreatedAt); err == nil {
		rec.CreatedAt = t
	}
	return rec
}

func (d *DynamoFavouriteRepository) List(ctx context.Context, userID string) ([]models.FavouriteRecord, error) {
	values, err := attributevalue.MarshalMap(map[string]string{":uid": userID})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	paginator := dynamodb.NewQueryPaginator(d.client, &dynamodb.QueryInput{
		TableName:                 aws.String(d.table),
		KeyConditionExpression:    aws.String("user_id = :uid"),
		ExpressionAttributeValues: values,
	})

	favourites := []models.FavouriteRecord{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb Query failed: %w", err)
		}
		var items []ddbFavourite
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		for _, it := range items {
			favourites = append(favourites, it.toModel())
		}
	}
	sort.Slice(favourites, func(i, j int) bool { return favourites[i].ProductID < favourites[j].ProductID })
	return favourites, nil
}

func (d *DynamoFavouriteRepository) Add(ctx context.Context, userID string, productID int) (*models.FavouriteRecord, error) {
	fav := ddbFavourite{
		UserID:    userID,
		ProductID: productID,
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	item, err := attributevalue.MarshalMap(fav)
	if err != nil {
		return nil, fmt.Errorf("marshal favourite: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(product_id)"),
	})
	var exists *types.ConditionalCheckFailedException
	switch {
	case errors.As(err, &exists):
		return d.get(ctx, userID, productID)
	case err != nil:
		return nil, fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	rec := fav.toModel()
	return &rec, nil
}

func (d *DynamoFavouriteRepository) get(ctx context.Context, userID string, productID int) (*models.FavouriteRecord, error) {
	key, err := favouriteKey(userID, productID)
	if err != nil {
		return nil, err
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{TableName: aws.String(d.table), Key: key})
	if err != nil {
		return nil, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("product %d is not a favourite", productID))
	}
	var fav ddbFavourite
	if err := attributevalue.UnmarshalMap(out.Item, &fav); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	rec := fav.toModel()
	return &rec, nil
}

func (d *DynamoFavouriteRepository) Remove(ctx context.Context, userID string, productID int) error {
	key, err := favouriteKey(userID, productID)
	if err != nil {
		return err
	}
	out, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(d.table),
		Key:          key,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("dynamodb DeleteItem failed: %w", err)
	}
	if len(out.Attributes) == 0 {
		return apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("product %d is not a favourite", productID))
	}
	return nil
}

func favouriteKey(userID string, productID int) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(struct {
		UserID    string `dynamodbav:"user_id"`
		ProductID int    `dynamodbav:"product_id"`
	}{userID, productID})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	return key, nil
}
