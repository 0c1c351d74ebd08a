package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"project-manager/internal/domain"
	"project-manager/internal/service"
)

func pathID(c *gin.Context, name, entity string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s id", domain.ErrInvalid, entity)
	}
	return id, nil
}

// listParams reads search, page, limit and sort with their documented defaults.
func listParams(c *gin.Context) (service.ListParams, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(service.DefaultPage)))
	if err != nil {
		return service.ListParams{}, fmt.Errorf("%w: invalid page", domain.ErrInvalid)
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultLimit)))
	if err != nil {
		return service.ListParams{}, fmt.Errorf("%w: invalid limit", domain.ErrInvalid)
	}
	sort := c.QueryArray("sort")
	if len(sort) == 0 {
		sort = []string{service.DefaultSort}
	}
	return service.ListParams{
		Search: c.DefaultQuery("search", ""),
		Page:   page,
		Limit:  limit,
		Sort:   sort,
	}, nil
}
