// schema.go
//
// jobtrack - job application tracking data service
//

package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/services"
	"github.com/jobwell/jobtrack/internal/types"
	"github.com/jobwell/jobtrack/internal/validation"
	"gorm.io/gorm"
)

// NewSchema builds the GraphQL schema over the given database handle.
// String ids are strictly coerced to numeric keys: a malformed id resolves to
// null (single lookups) or an empty list, never to an unfiltered result set.
func NewSchema(db *gorm.DB) (graphql.Schema, error) {
	companyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Company",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return companySource(p).ID, nil
				},
			},
			"company_name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return companySource(p).CompanyName, nil
				},
			},
			"company_purpose": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return companySource(p).CompanyPurpose, nil
				},
			},
			"company_description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return companySource(p).CompanyDescription, nil
				},
			},
			"financial": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return companySource(p).Financial, nil
				},
			},
		},
	})

	jobType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Job",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).Name, nil
				},
			},
			"status": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).Status, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).Description, nil
				},
			},
			"url": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).URL, nil
				},
			},
			"questions": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).Questions, nil
				},
			},
			"source": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).Source, nil
				},
			},
			"guid": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).GUID, nil
				},
			},
			"created_at": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return jobSource(p).CreatedAt.UTC().Format(time.RFC3339), nil
				},
			},
			"company": &graphql.Field{
				Type: companyType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					job := jobSource(p)
					if job.Company.ID != 0 {
						return &job.Company, nil
					}
					if job.CompanyID == 0 {
						return nil, nil
					}
					company, err := services.CompanyByID(db, job.CompanyID)
					if err == types.ErrNotFound {
						return nil, nil
					}
					return company, err
				},
			},
		},
	})

	eventType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).ID, nil
				},
			},
			"format": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).Format, nil
				},
			},
			"contact": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).Contact, nil
				},
			},
			"notes": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).Notes, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).Description, nil
				},
			},
			"follow_up": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).FollowUp, nil
				},
			},
			"job_id": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).JobID, nil
				},
			},
			"user_id": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).UserID, nil
				},
			},
			"date_time": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return eventSource(p).DateTime, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"JobById": &graphql.Field{
				Type: jobType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					jobID, err := types.ParseID(argString(p, "id"))
					if err != nil {
						return nil, nil
					}
					job, err := services.JobByID(db, jobID)
					if err == types.ErrNotFound {
						return nil, nil
					}
					return job, err
				},
			},
			"JobsByUserId": &graphql.Field{
				Type: graphql.NewList(jobType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := types.ParseID(argString(p, "userId"))
					if err != nil {
						return []models.Job{}, nil
					}
					return services.JobsByUserID(db, userID)
				},
			},
			"CompanyById": &graphql.Field{
				Type: companyType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					companyID, err := types.ParseID(argString(p, "id"))
					if err != nil {
						return nil, nil
					}
					company, err := services.CompanyByID(db, companyID)
					if err == types.ErrNotFound {
						return nil, nil
					}
					return company, err
				},
			},
			"companiesByUserId": &graphql.Field{
				Type: graphql.NewList(companyType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := types.ParseID(argString(p, "userId"))
					if err != nil {
						return []models.Company{}, nil
					}
					return services.CompaniesByUserID(db, userID)
				},
			},
			"EventById": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					eventID, err := types.ParseID(argString(p, "id"))
					if err != nil {
						return nil, nil
					}
					event, err := services.EventByID(db, eventID)
					if err == types.ErrNotFound {
						return nil, nil
					}
					return event, err
				},
			},
			"EventsByUserId": &graphql.Field{
				Type: graphql.NewList(eventType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := types.ParseID(argString(p, "userId"))
					if err != nil {
						return []models.Event{}, nil
					}
					return services.EventsByUserID(db, userID)
				},
			},
			"EventsByJobId": &graphql.Field{
				Type: graphql.NewList(eventType),
				Args: graphql.FieldConfigArgument{
					"jobId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					jobID, err := types.ParseID(argString(p, "jobId"))
					if err != nil {
						return []models.Event{}, nil
					}
					return services.EventsByJobID(db, jobID)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"CreateJob": &graphql.Field{
				Type: graphql.NewNonNull(jobType),
				Args: graphql.FieldConfigArgument{
					"name":                &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"user_id":             &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"status":              &graphql.ArgumentConfig{Type: graphql.String},
					"description":         &graphql.ArgumentConfig{Type: graphql.String},
					"url":                 &graphql.ArgumentConfig{Type: graphql.String},
					"questions":           &graphql.ArgumentConfig{Type: graphql.String},
					"source":              &graphql.ArgumentConfig{Type: graphql.String},
					"company_id":          &graphql.ArgumentConfig{Type: graphql.ID},
					"company_name":        &graphql.ArgumentConfig{Type: graphql.String},
					"company_description": &graphql.ArgumentConfig{Type: graphql.String},
					"company_purpose":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ownerID, err := types.ParseID(argString(p, "user_id"))
					if err != nil {
						return nil, types.ErrNotFound
					}

					input, report := validateJobArgs(db, p, 0, 0)
					if report != nil {
						return nil, report
					}

					return services.UpsertJob(db, input, ownerID)
				},
			},
			"UpdateJob": &graphql.Field{
				Type: graphql.NewNonNull(jobType),
				Args: graphql.FieldConfigArgument{
					"id":                  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":                &graphql.ArgumentConfig{Type: graphql.String},
					"status":              &graphql.ArgumentConfig{Type: graphql.String},
					"description":         &graphql.ArgumentConfig{Type: graphql.String},
					"url":                 &graphql.ArgumentConfig{Type: graphql.String},
					"questions":           &graphql.ArgumentConfig{Type: graphql.String},
					"source":              &graphql.ArgumentConfig{Type: graphql.String},
					"company_id":          &graphql.ArgumentConfig{Type: graphql.ID},
					"company_name":        &graphql.ArgumentConfig{Type: graphql.String},
					"company_description": &graphql.ArgumentConfig{Type: graphql.String},
					"company_purpose":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					actingUserID, err := ActingUser(p.Context)
					if err != nil {
						return nil, err
					}
					jobID, err := types.ParseID(argString(p, "id"))
					if err != nil {
						return nil, types.ErrNotFound
					}

					companyID := uint64(0)
					if raw := argString(p, "company_id"); raw != "" {
						companyID, err = types.ParseID(raw)
						if err != nil {
							return nil, types.ErrNotFound
						}
					}

					input, report := validateJobArgs(db, p, jobID, companyID)
					if report != nil {
						return nil, report
					}

					return services.UpsertJob(db, input, actingUserID)
				},
			},
			"CreateEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"format":      &graphql.ArgumentConfig{Type: graphql.String},
					"contact":     &graphql.ArgumentConfig{Type: graphql.String},
					"notes":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"follow_up":   &graphql.ArgumentConfig{Type: graphql.String},
					"job_id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"user_id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"date_time":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					jobID, err := types.ParseID(argString(p, "job_id"))
					if err != nil {
						return nil, types.ErrNotFound
					}
					userID, err := types.ParseID(argString(p, "user_id"))
					if err != nil {
						return nil, types.ErrNotFound
					}

					return services.CreateEvent(db, services.EventInput{
						Format:      argString(p, "format"),
						Contact:     argString(p, "contact"),
						Notes:       argString(p, "notes"),
						Description: argString(p, "description"),
						FollowUp:    argString(p, "follow_up"),
						DateTime:    argString(p, "date_time"),
						JobID:       jobID,
						UserID:      userID,
					})
				},
			},
			"UpdateEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"format":      &graphql.ArgumentConfig{Type: graphql.String},
					"contact":     &graphql.ArgumentConfig{Type: graphql.String},
					"notes":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"follow_up":   &graphql.ArgumentConfig{Type: graphql.String},
					"date_time":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					actingUserID, err := ActingUser(p.Context)
					if err != nil {
						return nil, err
					}
					eventID, err := types.ParseID(argString(p, "id"))
					if err != nil {
						return nil, types.ErrNotFound
					}

					return services.UpdateEvent(db, services.EventInput{
						ID:          eventID,
						Format:      argString(p, "format"),
						Contact:     argString(p, "contact"),
						Notes:       argString(p, "notes"),
						Description: argString(p, "description"),
						FollowUp:    argString(p, "follow_up"),
						DateTime:    argString(p, "date_time"),
					}, actingUserID)
				},
			},
			"DeleteEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					actingUserID, err := ActingUser(p.Context)
					if err != nil {
						return nil, err
					}
					eventID, err := types.ParseID(argString(p, "id"))
					if err != nil {
						return nil, types.ErrNotFound
					}
					return services.DeleteEvent(db, eventID, actingUserID)
				},
			},
			"CreateCompany": &graphql.Field{
				Type: companyType,
				Args: graphql.FieldConfigArgument{
					"company_name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"company_description": &graphql.ArgumentConfig{Type: graphql.String},
					"company_purpose":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return services.CreateCompany(db, services.CompanyInput{
						Name:        argString(p, "company_name"),
						Description: argString(p, "company_description"),
						Purpose:     argString(p, "company_purpose"),
					})
				},
			},
			"UpdateCompany": &graphql.Field{
				Type: companyType,
				Args: graphql.FieldConfigArgument{
					"id":                  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"company_name":        &graphql.ArgumentConfig{Type: graphql.String},
					"company_description": &graphql.ArgumentConfig{Type: graphql.String},
					"company_purpose":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					companyID, err := types.ParseID(argString(p, "id"))
					if err != nil {
						return nil, types.ErrNotFound
					}
					return services.UpdateCompany(db, services.CompanyInput{
						ID:          companyID,
						Name:        argString(p, "company_name"),
						Description: argString(p, "company_description"),
						Purpose:     argString(p, "company_purpose"),
					})
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// validateJobArgs runs the job argument set through the submission validator
// so both boundaries share one constraint table.
func validateJobArgs(db *gorm.DB, p graphql.ResolveParams, jobID, companyID uint64) (services.JobInput, *types.ValidationError) {
	submission := validation.JobSubmission{
		Name:        argString(p, "name"),
		Description: argString(p, "description"),
		Status:      argString(p, "status"),
		Source:      argString(p, "source"),
		URL:         argString(p, "url"),
		Questions:   argString(p, "questions"),
	}

	input, report := validation.ValidateJobFields(&submission)
	if report != nil {
		return services.JobInput{}, report
	}

	input.ID = jobID
	if name := argString(p, "company_name"); name != "" || companyID != 0 {
		input.Company = &services.CompanyInput{
			ID:          companyID,
			Name:        name,
			Description: argString(p, "company_description"),
			Purpose:     argString(p, "company_purpose"),
		}
	}

	return input, nil
}

func argString(p graphql.ResolveParams, name string) string {
	if v, ok := p.Args[name].(string); ok {
		return v
	}
	return ""
}

func jobSource(p graphql.ResolveParams) *models.Job {
	switch j := p.Source.(type) {
	case *models.Job:
		return j
	case models.Job:
		return &j
	}
	return &models.Job{}
}

func companySource(p graphql.ResolveParams) *models.Company {
	switch c := p.Source.(type) {
	case *models.Company:
		return c
	case models.Company:
		return &c
	}
	return &models.Company{}
}

func eventSource(p graphql.ResolveParams) *models.Event {
	switch e := p.Source.(type) {
	case *models.Event:
		return e
	case models.Event:
		return &e
	}
	return &models.Event{}
}
