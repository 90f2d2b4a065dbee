package diagnosis

import "fmt"

// copyEntry is the headline and explanation template of one code.
type copyEntry struct {
	headline string
	explain  func(f facts) string
}

// codeCopies holds the product copy per code. Each explanation interpolates
// only the fields that code is about.
var codeCopies = map[Code]copyEntry{
	CodePaused: {
		headline: "Tu negocio no está siendo probado ahora mismo.",
		explain: func(f facts) string {
			return fmt.Sprintf("Aunque tu negocio lleva creado aprox. %d meses, en los últimos 3 meses "+
				"ha estado en pausa o con muy poco movimiento. Sin actividad reciente, no hay base justa "+
				"para decir “funciona” o “no funciona”.", f.months)
		},
	},
	CodeSignals: {
		headline: "Hay señales reales de que esto sí puede funcionar.",
		explain: func(f facts) string {
			return fmt.Sprintf("Has tenido %d ventas en los últimos 90 días. "+
				"Eso es una señal real: el mercado sí paga, al menos a veces.", f.Sales90d)
		},
	},
	CodeInterestNoPayment: {
		headline: "Hay interés, pero algo está frenando el pago.",
		explain: func(f facts) string {
			return fmt.Sprintf("En el último mes tuviste %d conversaciones y %d ofertas, "+
				"pero 0 ventas. Eso suele significar: la gente se interesa, pero no se decide a pagar.",
				f.Conversations30d, f.Offers30d)
		},
	},
	CodeNoProof: {
		headline: "No hay suficiente prueba clara todavía.",
		explain: func(f facts) string {
			return fmt.Sprintf("Tu negocio lleva creado aprox. %d meses, pero en el último mes no hay suficiente actividad "+
				"medible para concluir si el modelo funciona o no.", f.months)
		},
	},
	CodeStrongReconsider: {
		headline: "Ya hubo intento real: no conviene seguir igual.",
		explain: func(f facts) string {
			return fmt.Sprintf("Llevas aprox. %d meses con el negocio y en el último mes hubo movimiento real "+
				"(%d conversaciones, %d ofertas), pero 0 ventas. "+
				"Con esa combinación, insistir sin cambiar nada suele ser perder tiempo.",
				f.months, f.Conversations30d, f.Offers30d)
		},
	},
	CodeLongTimeLowPressure: {
		headline: "El negocio lleva tiempo, pero no ha tenido presión reciente suficiente.",
		explain: func(f facts) string {
			return fmt.Sprintf("Llevas aprox. %d meses con el negocio, pero en el último mes casi no hubo ofertas claras. "+
				"En ese caso, el problema no es “si funciona o no”, sino que no hay una prueba reciente y medible.", f.months)
		},
	},
}

// codeCopy returns the copy for code, falling back to NO_PROOF.
func codeCopy(code Code) copyEntry {
	if c, ok := codeCopies[code]; ok {
		return c
	}
	return codeCopies[CodeNoProof]
}

// decision is the recommended decision attached to a code.
type decision struct {
	label       string
	explanation string
}

var decisions = map[Code]decision{
	CodeSignals: {
		label: "✅ Continuar",
		explanation: "Hay señales reales de pago. No es momento de cerrar. " +
			"La prioridad ahora es repetir lo que ya funcionó y hacerlo consistente.",
	},
	CodeInterestNoPayment: {
		label: "🟡 Replantear",
		explanation: "No conviene cerrar todavía, pero tampoco seguir igual. " +
			"Ajusta UNA cosa (oferta, mensaje o precio) y vuelve a probar con el mismo volumen.",
	},
	CodeStrongReconsider: {
		label: "🟠 Replantear fuerte (cambio estructural)",
		explanation: "Con el tiempo y el intento realizado, seguir igual es poco probable que funcione. " +
			"Necesitas un cambio de oferta/cliente/precio (elige uno) o un enfoque distinto.",
	},
	CodePaused: {
		label: "⏸ Pausar o reactivar con intención",
		explanation: "No hay base reciente para decidir. O lo reactivas con una prueba real de 14 días, " +
			"o lo pausas de forma consciente.",
	},
	CodeLongTimeLowPressure: {
		label: "🟡 Aún no decidir (primero prueba en serio)",
		explanation: "Lleva tiempo creado, pero no hay presión reciente suficiente. " +
			"Primero haz una prueba real de 14 días antes de cerrar o cambiar todo.",
	},
	CodeNoProof: {
		label: "🟡 Aún no decidir",
		explanation: "Aún no hay una prueba reciente clara para cerrar o continuar con certeza. " +
			"Primero necesitas actividad medible durante 14 días.",
	},
}

func decisionFor(code Code) decision {
	if d, ok := decisions[code]; ok {
		return d
	}
	return decisions[CodeNoProof]
}

const secondaryNoteText = "Tu modelo normalmente necesita conversación directa para cerrar ventas, " +
	"pero hoy no estás iniciando conversaciones. Eso, por sí solo, puede explicar el estancamiento."
