package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	listNamePattern      = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)
	attributeNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)
)

// Contact identifiers. Writing them through attributes would re-key an
// existing contact.
var reservedAttributes = []string{"EMAIL", "SMS", "EXT_ID"}

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register adds json field names and the listname and contactattr tags to v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	err := v.RegisterValidation("listname", listNameValidator)
	if err != nil {
		log.Fatal("register listname validator failed")
	}
	err = v.RegisterValidation("contactattr", contactAttributeValidator)
	if err != nil {
		log.Fatal("register contactattr validator failed")
	}
}

var listNameValidator validator.Func = func(fl validator.FieldLevel) bool {
	return listNamePattern.MatchString(fl.Field().String())
}

var contactAttributeValidator validator.Func = func(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if !attributeNamePattern.MatchString(name) {
		return false
	}
	for _, reserved := range reservedAttributes {
		if strings.EqualFold(name, reserved) {
			return false
		}
	}

	return true
}
