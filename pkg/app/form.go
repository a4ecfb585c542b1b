package app

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// BindAndValid binds the request body and validates it against the
// struct's binding tags.
// BindAndValid 绑定请求体并根据 binding 标签进行参数验证
func BindAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	if err := c.ShouldBind(obj); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: "invalid request body",
			})
			return false, errs
		}
		for _, fieldErr := range validationErrors {
			errs = append(errs, &ValidError{
				Key:     fieldErr.Field(),
				Message: fmt.Sprintf("%s field is invalid (%s)", fieldErr.Field(), fieldErr.Tag()),
			})
		}
		return false, errs
	}
	return true, nil
}
