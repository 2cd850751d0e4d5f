package beers

import "strings"

// Style es la categoría de una cerveza.
type Style string

const (
	StyleLager   Style = "LAGER"
	StylePilsner Style = "PILSNER"
	StyleStout   Style = "STOUT"
	StyleGose    Style = "GOSE"
	StylePorter  Style = "PORTER"
	StyleAle     Style = "ALE"
	StyleWheat   Style = "WHEAT"
	StyleIPA     Style = "IPA"
	StylePaleAle Style = "PALE_ALE"
	StyleSaison  Style = "SAISON"
)

var styles = []Style{
	StyleLager,
	StylePilsner,
	StyleStout,
	StyleGose,
	StylePorter,
	StyleAle,
	StyleWheat,
	StyleIPA,
	StylePaleAle,
	StyleSaison,
}

// Styles devuelve los estilos válidos en orden de declaración.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// Valid indica si el estilo pertenece al enum.
func (style Style) Valid() bool {
	for _, candidate := range styles {
		if candidate == style {
			return true
		}
	}
	return false
}

// ParseStyle valida un estilo recibido por query string.
// Es exacto: "ale" no es "ALE".
func ParseStyle(value string) (Style, error) {
	style := Style(strings.TrimSpace(value))
	if !style.Valid() {
		return "", ErrorInvalidStyle
	}
	return style, nil
}
