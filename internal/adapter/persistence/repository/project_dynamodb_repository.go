package repository

import (
	"context"
	"errors"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultProjectsTableName = "projects"

type projectItem struct {
	ID          string `dynamodbav:"id"`
	FileNumber  string `dynamodbav:"file_number"`
	Name        string `dynamodbav:"name"`
	Department  string `dynamodbav:"department"`
	Client      string `dynamodbav:"client"`
	BaseAmount  string `dynamodbav:"base_amount"`
	TaxAmount   string `dynamodbav:"tax_amount"`
	TotalAmount string `dynamodbav:"total_amount"`
	Status      string `dynamodbav:"status"`
	IssueDate   string `dynamodbav:"issue_date"`
	PaymentDate string `dynamodbav:"payment_date,omitempty"`
	Notes       string `dynamodbav:"notes,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Amounts are stored as decimal strings to keep cents exact.
type ProjectDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb *dynamodb.Client, tableName string) *ProjectDynamoRepository {
	if tableName == "" {
		tableName = DefaultProjectsTableName
	}
	return &ProjectDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	av, err := attributevalue.MarshalMap(toProjectItem(p))
	if err != nil {
		return entities.Project{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

// Update replaces the stored project. A missing project yields a zero
// Project and no error.
func (r *ProjectDynamoRepository) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	av, err := attributevalue.MarshalMap(toProjectItem(p))
	if err != nil {
		return entities.Project{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Project{}, nil
		}
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) List(ctx context.Context) ([]entities.Project, error) {
	pager := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	var projects []entities.Project
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []projectItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			projects = append(projects, fromProjectItem(it))
		}
	}
	return projects, nil
}

func toProjectItem(p entities.Project) projectItem {
	return projectItem{
		ID:          p.ID,
		FileNumber:  p.FileNumber,
		Name:        p.Name,
		Department:  string(p.Department),
		Client:      p.Client,
		BaseAmount:  formatAmount(p.BaseAmount),
		TaxAmount:   formatAmount(p.TaxAmount),
		TotalAmount: formatAmount(p.TotalAmount),
		Status:      string(p.Status),
		IssueDate:   entities.FormatDate(p.IssueDate),
		PaymentDate: formatOptionalDay(p.PaymentDate),
		Notes:       p.Notes,
		CreatedAt:   formatTimestamp(p.CreatedAt),
		UpdatedAt:   formatTimestamp(p.UpdatedAt),
	}
}

func fromProjectItem(it projectItem) entities.Project {
	return entities.Project{
		ID:          it.ID,
		FileNumber:  it.FileNumber,
		Name:        it.Name,
		Department:  entities.Department(it.Department),
		Client:      it.Client,
		BaseAmount:  parseAmount(it.BaseAmount),
		TaxAmount:   parseAmount(it.TaxAmount),
		TotalAmount: parseAmount(it.TotalAmount),
		Status:      entities.ProjectStatus(it.Status),
		IssueDate:   parseDay(it.IssueDate),
		PaymentDate: parseOptionalDay(it.PaymentDate),
		Notes:       it.Notes,
		CreatedAt:   parseTimestamp(it.CreatedAt),
		UpdatedAt:   parseTimestamp(it.UpdatedAt),
	}
}
