package repository

import (
	"context"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
	"github.com/techcs7646/carRental-backend/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCarsTableName = "cars"

type carItem struct {
	ID          string  `dynamodbav:"id"`
	Name        string  `dynamodbav:"name"`
	Brand       string  `dynamodbav:"brand"`
	Model       string  `dynamodbav:"model"`
	Year        int     `dynamodbav:"year"`
	PricePerDay float64 `dynamodbav:"price_per_day"`
	IsAvailable bool    `dynamodbav:"is_available"`
}

// CarDynamoRepository reads the car catalog table the catalog service
// maintains. The booking core never writes through it.
//
// Table requirements:
//   - PK: id (string)

type CarDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICarRepository = (*CarDynamoRepository)(nil)

func NewCarDynamoRepository(ddb *dynamodb.Client) *CarDynamoRepository {
	return &CarDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CARS_TABLE", defaultCarsTableName),
	}
}

func (r *CarDynamoRepository) GetByID(ctx context.Context, id string) (entities.Car, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Car{}, err
	}
	if len(out.Item) == 0 {
		return entities.Car{}, nil
	}

	var it carItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Car{}, err
	}
	return entities.Car{
		ID:          it.ID,
		Name:        it.Name,
		Brand:       it.Brand,
		Model:       it.Model,
		Year:        it.Year,
		PricePerDay: it.PricePerDay,
		IsAvailable: it.IsAvailable,
	}, nil
}
