// graphql.go
//
// jobtrack - job application tracking data service
//

package handlers

import (
	gql "github.com/graphql-go/graphql"

	"github.com/gofiber/fiber/v2"
	"github.com/jobwell/jobtrack/internal/graphql"
	"github.com/jobwell/jobtrack/internal/utils"
	"gorm.io/gorm"
)

// GraphQLHandler serves the query boundary over a single POST endpoint.
type GraphQLHandler struct {
	DB     *gorm.DB
	Schema gql.Schema
}

// NewGraphQLHandler builds the schema once at startup.
func NewGraphQLHandler(db *gorm.DB) (*GraphQLHandler, error) {
	schema, err := graphql.NewSchema(db)
	if err != nil {
		return nil, err
	}
	return &GraphQLHandler{DB: db, Schema: schema}, nil
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Post handles POST /graphql
// @Summary Execute a GraphQL operation
// @Description Accepts the standard {query, operationName, variables} request body. Resolver errors are carried in the response "errors" array per GraphQL convention.
// @Tags GraphQL
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /graphql [post]
func (h *GraphQLHandler) Post(c *fiber.Ctx) error {
	user, err := getSessionUser(c, h.DB)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "jobs.authorization.user")
	}

	var req graphqlRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "graphql")
	}
	if req.Query == "" {
		return utils.ErrorResponse(c, "query is required", fiber.StatusBadRequest, "graphql")
	}

	result := gql.Do(gql.Params{
		Schema:         h.Schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        graphql.WithActingUser(c.UserContext(), user.ID),
	})

	return c.Status(fiber.StatusOK).JSON(result)
}
