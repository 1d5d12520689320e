package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/techcs7646/carRental-backend/internal/domain/entities"
	"github.com/techcs7646/carRental-backend/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultBookingsTableName = "bookings"
	bookingsCarIDIndex       = "car_id-index"
	bookingsUserIDIndex      = "user_id-index"
)

type bookingItem struct {
	ID              string  `dynamodbav:"id"`
	CarID           string  `dynamodbav:"car_id"`
	UserID          string  `dynamodbav:"user_id"`
	StartDate       string  `dynamodbav:"start_date"`
	EndDate         string  `dynamodbav:"end_date"`
	PickupTime      string  `dynamodbav:"pickup_time,omitempty"`
	DropoffTime     string  `dynamodbav:"dropoff_time,omitempty"`
	PickupLocation  string  `dynamodbav:"pickup_location,omitempty"`
	DropoffLocation string  `dynamodbav:"dropoff_location,omitempty"`
	TotalAmount     float64 `dynamodbav:"total_amount"`
	Status          string  `dynamodbav:"status"`
	PaymentStatus   string  `dynamodbav:"payment_status"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
}

// BookingDynamoRepository persists Booking entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: car_id-index (PK: car_id) — conflict queries
//   - GSI: user_id-index (PK: user_id) — renter listings
//
// Dates are stored as YYYY-MM-DD strings so the overlap filter can
// compare them lexicographically.

type BookingDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBookingRepository = (*BookingDynamoRepository)(nil)

func NewBookingDynamoRepository(ddb *dynamodb.Client) *BookingDynamoRepository {
	return &BookingDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BOOKINGS_TABLE", defaultBookingsTableName),
	}
}

func (r *BookingDynamoRepository) Insert(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	it := toBookingItem(b)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Booking{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Booking{}, err
	}
	if len(out.Item) == 0 {
		return entities.Booking{}, nil
	}

	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func (r *BookingDynamoRepository) FindOverlapping(ctx context.Context, carID, startDate, endDate string, excludeStatuses []entities.BookingStatus) ([]entities.Booking, error) {
	filter, values := overlapFilter(startDate, endDate, excludeStatuses)

	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(bookingsCarIDIndex),
		KeyConditionExpression: aws.String("car_id = :cid"),
		FilterExpression:       aws.String(filter),
		ExpressionAttributeNames: map[string]string{
			"#status":     "status",
			"#start_date": "start_date",
			"#end_date":   "end_date",
		},
		ExpressionAttributeValues: mergeValues(values, map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: carID},
		}),
	})
	if err != nil {
		return nil, err
	}
	return unmarshalBookings(out.Items)
}

// overlapFilter renders the closed-interval intersection test over the
// stored date strings, skipping the excluded statuses:
// itemStart <= queryEnd AND itemEnd >= queryStart.
func overlapFilter(startDate, endDate string, excludeStatuses []entities.BookingStatus) (string, map[string]types.AttributeValue) {
	values := map[string]types.AttributeValue{
		":start": &types.AttributeValueMemberS{Value: startDate},
		":end":   &types.AttributeValueMemberS{Value: endDate},
	}

	expr := "#start_date <= :end AND #end_date >= :start"
	if len(excludeStatuses) > 0 {
		placeholders := make([]string, 0, len(excludeStatuses))
		for i, s := range excludeStatuses {
			ph := fmt.Sprintf(":ex%d", i)
			placeholders = append(placeholders, ph)
			values[ph] = &types.AttributeValueMemberS{Value: string(s)}
		}
		expr += " AND NOT (#status IN (" + strings.Join(placeholders, ", ") + "))"
	}
	return expr, values
}

func (r *BookingDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) (entities.Booking, error) {
	return r.update(ctx, id,
		"SET #status = :to, #updated_at = :updated_at",
		"attribute_exists(#id) AND #status = :from",
		map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":updated_at": &types.AttributeValueMemberS{Value: nowRFC3339()},
		},
		map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		},
	)
}

func (r *BookingDynamoRepository) UpdatePayment(ctx context.Context, id string, from, to entities.BookingStatus, payment entities.PaymentStatus) (entities.Booking, error) {
	return r.update(ctx, id,
		"SET #status = :to, #payment_status = :payment, #updated_at = :updated_at",
		"attribute_exists(#id) AND #status = :from AND #payment_status = :unpaid",
		map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":payment":    &types.AttributeValueMemberS{Value: string(payment)},
			":unpaid":     &types.AttributeValueMemberS{Value: string(entities.PaymentStatusUnpaid)},
			":updated_at": &types.AttributeValueMemberS{Value: nowRFC3339()},
		},
		map[string]string{
			"#status":         "status",
			"#payment_status": "payment_status",
			"#updated_at":     "updated_at",
		},
	)
}

// update runs a guarded UpdateItem. A failed condition is reported as a
// zero-value Booking so callers can distinguish "lost the race" from
// infrastructure failure.
func (r *BookingDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	conditionExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Booking, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(conditionExpr),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Booking{}, nil
		}
		return entities.Booking{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Booking{}, nil
	}
	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func (r *BookingDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Booking, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(bookingsUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalBookings(out.Items)
}

func (r *BookingDynamoRepository) ListByStatus(ctx context.Context, status entities.BookingStatus) ([]entities.Booking, error) {
	in := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		}
	}

	out, err := r.ddb.Scan(ctx, in)
	if err != nil {
		return nil, err
	}
	return unmarshalBookings(out.Items)
}

func unmarshalBookings(items []map[string]types.AttributeValue) ([]entities.Booking, error) {
	bookings := make([]entities.Booking, 0, len(items))
	for _, raw := range items {
		var it bookingItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		bookings = append(bookings, fromBookingItem(it))
	}
	return bookings, nil
}

func toBookingItem(b entities.Booking) bookingItem {
	return bookingItem{
		ID:              b.ID,
		CarID:           b.CarID,
		UserID:          b.UserID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		PickupTime:      b.PickupTime,
		DropoffTime:     b.DropoffTime,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		TotalAmount:     b.TotalAmount,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromBookingItem(it bookingItem) entities.Booking {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Booking{
		ID:              it.ID,
		CarID:           it.CarID,
		UserID:          it.UserID,
		StartDate:       it.StartDate,
		EndDate:         it.EndDate,
		PickupTime:      it.PickupTime,
		DropoffTime:     it.DropoffTime,
		PickupLocation:  it.PickupLocation,
		DropoffLocation: it.DropoffLocation,
		TotalAmount:     it.TotalAmount,
		Status:          entities.BookingStatus(it.Status),
		PaymentStatus:   entities.PaymentStatus(it.PaymentStatus),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
