package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/service"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators 在 gin 的校验引擎上注册枚举与价格校验，并让错误使用 JSON 字段名。
// 可以重复调用。
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// 价格以字符串形式交给校验器
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		validators := map[string]validator.Func{
			"bairro": func(fl validator.FieldLevel) bool {
				return domain.Neighborhood(fl.Field().String()).Valid()
			},
			"tipo_imovel": func(fl validator.FieldLevel) bool {
				return domain.PropertyType(fl.Field().String()).Valid()
			},
			"perfil_tipo": func(fl validator.FieldLevel) bool {
				return domain.Role(fl.Field().String()).Valid()
			},
			"preco": func(fl validator.FieldLevel) bool {
				d, err := decimal.NewFromString(fl.Field().String())
				return err == nil && domain.ValidatePrice(d) == nil
			},
		}
		for tag, fn := range validators {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("register validation %q: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

// bindJSON 绑定并校验请求体，失败时写入 400 并返回 false。空请求体按 {} 处理。
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Debug("Handler: Invalid request body")
	ValidationResponse(c, bindErrorFields(err))
	return false
}

// bindErrorFields 把绑定错误转换为字段错误
func bindErrorFields(err error) map[string][]string {
	fields := make(map[string][]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			path := fieldPath(fe)
			fields[path] = append(fields[path], fieldMessage(fe))
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields[typeErr.Field] = []string{"Tipo de dado inválido."}
		return fields
	}

	fields["non_field_errors"] = []string{"JSON inválido."}
	return fields
}

// fieldPath 返回去掉根结构体与嵌入结构体名后的字段路径，例如 imagens_upload[0].imagem
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	kept := make([]string, 0, len(parts))
	for _, p := range parts[1:] {
		if p == "" || unicode.IsUpper([]rune(p)[0]) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return service.MsgRequired
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Certifique-se de que este campo não tenha mais de %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("Certifique-se de que este valor seja menor ou igual a %s.", fe.Param())
	case "min":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("Certifique-se de que este campo tenha pelo menos %s itens.", fe.Param())
		case reflect.String:
			return fmt.Sprintf("Certifique-se de que este campo tenha mais de %s caracteres.", fe.Param())
		}
		return fmt.Sprintf("Certifique-se de que este valor seja maior ou igual a %s.", fe.Param())
	case "email":
		return "Insira um endereço de email válido."
	case "oneof", "bairro", "tipo_imovel", "perfil_tipo":
		return fmt.Sprintf("\"%v\" não é um escolha válido.", fe.Value())
	case "preco":
		s, _ := fe.Value().(string)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return "Um número válido é necessário."
		}
		if err := domain.ValidatePrice(d); err != nil {
			return err.Error()
		}
	}
	return "Valor inválido."
}
