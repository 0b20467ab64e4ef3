package domain

// Neighborhood 是房源所在街区的封闭枚举 (bairro)。
type Neighborhood string

const (
	NeighborhoodCentro       Neighborhood = "centro"
	NeighborhoodNovaCorrente Neighborhood = "nova_corrente"
	NeighborhoodAeroportoI   Neighborhood = "aeroporto_i"
	NeighborhoodAeroportoII  Neighborhood = "aeroporto_ii"
	NeighborhoodVermelhao    Neighborhood = "vermelhao"
	NeighborhoodSincerino    Neighborhood = "sincerino"
	NeighborhoodVilaNova     Neighborhood = "vila_nova"
)

// choice 是 code 与展示名称的一对映射。
type choice[T ~string] struct {
	Code  T
	Label string
}

var neighborhoodChoices = []choice[Neighborhood]{
	{NeighborhoodCentro, "Centro"},
	{NeighborhoodNovaCorrente, "Nova Corrente"},
	{NeighborhoodAeroportoI, "Aeroporto I"},
	{NeighborhoodAeroportoII, "Aeroporto II"},
	{NeighborhoodVermelhao, "Vermelhão"},
	{NeighborhoodSincerino, "Sincerino"},
	{NeighborhoodVilaNova, "Vila Nova"},
}

// Neighborhoods 按定义顺序返回所有街区 code。
func Neighborhoods() []Neighborhood {
	return codes(neighborhoodChoices)
}

// Valid 判断 code 是否属于封闭集合。
func (n Neighborhood) Valid() bool {
	_, ok := lookup(neighborhoodChoices, n)
	return ok
}

// Label 返回人类可读名称；未知 code 原样返回。
func (n Neighborhood) Label() string {
	if l, ok := lookup(neighborhoodChoices, n); ok {
		return l
	}
	return string(n)
}

// PropertyType 是房源类型的封闭枚举 (tipo)。
type PropertyType string

const (
	PropertyTypeCasa        PropertyType = "casa"
	PropertyTypeKitnet      PropertyType = "kitnet"
	PropertyTypeApartamento PropertyType = "apartamento"
	PropertyTypeQuarto      PropertyType = "quarto"
)

var propertyTypeChoices = []choice[PropertyType]{
	{PropertyTypeCasa, "Casa"},
	{PropertyTypeKitnet, "Kitnet"},
	{PropertyTypeApartamento, "Apartamento"},
	{PropertyTypeQuarto, "Quarto"},
}

// PropertyTypes 按定义顺序返回所有类型 code。统计接口依赖这个顺序。
func PropertyTypes() []PropertyType {
	return codes(propertyTypeChoices)
}

func (p PropertyType) Valid() bool {
	_, ok := lookup(propertyTypeChoices, p)
	return ok
}

func (p PropertyType) Label() string {
	if l, ok := lookup(propertyTypeChoices, p); ok {
		return l
	}
	return string(p)
}

// Role 是用户在平台上的身份：房东或租客。
type Role string

const (
	RoleLandlord Role = "LOCADOR"
	RoleTenant   Role = "LOCATARIO"
)

var roleChoices = []choice[Role]{
	{RoleLandlord, "Locador"},
	{RoleTenant, "Locatário"},
}

func Roles() []Role {
	return codes(roleChoices)
}

func (r Role) Valid() bool {
	_, ok := lookup(roleChoices, r)
	return ok
}

func (r Role) Label() string {
	if l, ok := lookup(roleChoices, r); ok {
		return l
	}
	return string(r)
}

func lookup[T ~string](choices []choice[T], code T) (string, bool) {
	for _, c := range choices {
		if c.Code == code {
			return c.Label, true
		}
	}
	return "", false
}

func codes[T ~string](choices []choice[T]) []T {
	out := make([]T, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.Code)
	}
	return out
}
