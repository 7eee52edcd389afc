// Package dynamostore implements the live registry on DynamoDB.
//
// The version guard maps directly onto a PutItem condition expression:
// attribute_not_exists(#v) OR #v <= :newv. A ConditionalCheckFailed
// rejection means an equal-or-newer version is already live and resolves to
// OutcomeSkipped rather than an error.
package dynamostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"lantern/internal/live"
	"lantern/internal/store"
)

// versionCondition admits first writes and equal-or-newer versions.
const versionCondition = "attribute_not_exists(#v) OR #v <= :newv"

// Client writes live records to a single DynamoDB table.
type Client struct {
	db     *dynamodb.Client
	table  string
	dryRun bool
	logger *slog.Logger
}

// New constructs a client for the given table. In dry-run mode PutLive logs
// the intended key and record without calling DynamoDB and never evaluates
// the guard condition.
func New(cfg aws.Config, table string, dryRun bool, logger *slog.Logger) *Client {
	return &Client{
		db:     dynamodb.NewFromConfig(cfg),
		table:  table,
		dryRun: dryRun,
		logger: logger,
	}
}

// PutLive writes rec at its composite key. Unguarded writes overwrite
// unconditionally; guarded writes require the record to expose a version and
// succeed only when no equal-or-newer version is already live.
func (c *Client) PutLive(ctx context.Context, rec live.Record, guardVersion bool) (store.Outcome, error) {
	key := rec.Key()

	var version int
	if guardVersion {
		versioned, ok := rec.(live.Versioned)
		if !ok {
			return store.OutcomeStored, fmt.Errorf("record %s has no version to guard", key.PK)
		}
		version = versioned.LiveVersion()
	}

	if c.dryRun {
		c.logger.Info("dry-run: would put live record",
			slog.String("pk", key.PK),
			slog.String("sk", key.SK),
			slog.String("entityType", rec.EntityType()),
			slog.Bool("guarded", guardVersion))
		return store.OutcomeDryRun, nil
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return store.OutcomeStored, fmt.Errorf("marshal record %s: %w", key.PK, err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: key.PK}
	item["SK"] = &types.AttributeValueMemberS{Value: key.SK}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	}
	if guardVersion {
		input.ConditionExpression = aws.String(versionCondition)
		input.ExpressionAttributeNames = map[string]string{"#v": "version"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":newv": &types.AttributeValueMemberN{Value: strconv.Itoa(version)},
		}
	}

	if _, err := c.db.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if guardVersion && errors.As(err, &conditionFailed) {
			c.logger.Info("skipped live record: newer or equal version already live",
				slog.String("pk", key.PK),
				slog.Int("version", version))
			return store.OutcomeSkipped, nil
		}
		return store.OutcomeStored, fmt.Errorf("put live record %s: %w", key.PK, err)
	}

	c.logger.Info("put live record",
		slog.String("pk", key.PK),
		slog.String("entityType", rec.EntityType()))
	return store.OutcomeStored, nil
}
