package diagnosis

// PreviewTitle is the fixed title of every preview.
const PreviewTitle = "🔎 Resultado inicial"

const (
	fallbackTeaser = "Hay algo importante que vale la pena revisar."
	unlockInvite   = "En el análisis completo te explicamos qué está pasando, qué cambiar primero " +
		"y qué NO tocar todavía."
)

// teasers holds one sentence per code. Teasers are written on their own and
// never reuse explanation text.
var teasers = map[Code]string{
	CodePaused:              "Parece que el negocio ha estado en pausa (y eso cambia la lectura).",
	CodeSignals:             "Hay una señal positiva: ya existe pago real.",
	CodeInterestNoPayment:   "Hay interés, pero no se está convirtiendo en pago.",
	CodeNoProof:             "Falta una prueba reciente clara para concluir.",
	CodeStrongReconsider:    "Hay una señal fuerte: con este intento, seguir igual no conviene.",
	CodeLongTimeLowPressure: "Lleva tiempo creado, pero falta presión reciente para evaluarlo bien.",
}

// PreviewFor builds the teaser for a code. It only sees the code, so the
// full explanation cannot leak into it.
func PreviewFor(code Code) Preview {
	teaser, ok := teasers[code]
	if !ok {
		teaser = fallbackTeaser
	}
	return Preview{
		Title:  PreviewTitle,
		Teaser: teaser + "\n\n" + unlockInvite,
	}
}
