package models

// TipoAccion corresponde al ENUM tipo_accion de la cronología del partido.
type TipoAccion string

const (
	AccionGol          TipoAccion = "gol"
	AccionAmarilla     TipoAccion = "amarilla"
	AccionRoja         TipoAccion = "roja"
	AccionFalta        TipoAccion = "falta"
	AccionParada       TipoAccion = "parada"
	AccionAsistencia   TipoAccion = "asistencia"
	AccionTiempoMuerto TipoAccion = "tiempo_muerto"
)

func (t TipoAccion) EsValido() bool {
	switch t {
	case AccionGol, AccionAmarilla, AccionRoja, AccionFalta,
		AccionParada, AccionAsistencia, AccionTiempoMuerto:
		return true
	}
	return false
}

// EstadisticasPartido son los contadores agregados de un partido finalizado.
type EstadisticasPartido struct {
	ID                     int  `json:"id"`
	PartidoID              int  `json:"partido_id"`
	GolesLocal             int  `json:"goles_local"`
	GolesRival             int  `json:"goles_rival"`
	FaltasLocal            int  `json:"faltas_local"`
	FaltasRival            int  `json:"faltas_rival"`
	TarjetasAmarillasLocal int  `json:"tarjetas_amarillas_local"`
	TarjetasAmarillasRival int  `json:"tarjetas_amarillas_rival"`
	TarjetasRojasLocal     int  `json:"tarjetas_rojas_local"`
	TarjetasRojasRival     int  `json:"tarjetas_rojas_rival"`
	PosesionLocal          *int `json:"posesion_local,omitempty"`
	TirosLocal             *int `json:"tiros_local,omitempty"`
	TirosRival             *int `json:"tiros_rival,omitempty"`
}

// EstadisticaJugadorPartido es el desglose por jugador de un partido.
type EstadisticaJugadorPartido struct {
	ID                int  `json:"id"`
	PartidoID         int  `json:"partido_id"`
	JugadorID         int  `json:"jugador_id"`
	Minutos           int  `json:"minutos"`
	Goles             int  `json:"goles"`
	Asistencias       int  `json:"asistencias"`
	TarjetasAmarillas int  `json:"tarjetas_amarillas"`
	TarjetasRojas     int  `json:"tarjetas_rojas"`
	Titular           bool `json:"titular"`

	Jugador *Jugador `json:"jugador,omitempty"`
}

// AccionPartido es una entrada de la cronología del acta.
type AccionPartido struct {
	ID          int        `json:"id"`
	PartidoID   int        `json:"partido_id"`
	Tipo        TipoAccion `json:"tipo"`
	Minuto      int        `json:"minuto"`
	Parte       int        `json:"parte"` // 1 o 2
	EquipoLocal bool       `json:"equipo_local"`
	JugadorID   *int       `json:"jugador_id,omitempty"`
	Descripcion *string    `json:"descripcion,omitempty"`
}

// TiempoJuego registra una entrada/salida de pista de un jugador.
type TiempoJuego struct {
	ID            int  `json:"id"`
	PartidoID     int  `json:"partido_id"`
	JugadorID     int  `json:"jugador_id"`
	MinutoEntrada int  `json:"minuto_entrada"`
	MinutoSalida  *int `json:"minuto_salida,omitempty"`
}

// CuerpoTecnicoPartido es el staff convocado a un partido, con sus tarjetas.
type CuerpoTecnicoPartido struct {
	ID                int    `json:"id"`
	PartidoID         int    `json:"partido_id"`
	Nombre            string `json:"nombre"`
	RolTecnico        string `json:"rol_tecnico"`
	TarjetasAmarillas int    `json:"tarjetas_amarillas"`
	TarjetasRojas     int    `json:"tarjetas_rojas"`
}

// ActaPartido es el informe completo reconstruido a partir de las cinco
// tablas de estadísticas. Las faltas por parte se calculan desde la
// cronología, no se almacenan.
type ActaPartido struct {
	Partido       *Partido                    `json:"partido"`
	Resumen       *EstadisticasPartido        `json:"resumen"`
	Jugadores     []EstadisticaJugadorPartido `json:"jugadores"`
	Acciones      []AccionPartido             `json:"acciones"`
	Tiempos       []TiempoJuego               `json:"tiempos"`
	CuerpoTecnico []CuerpoTecnicoPartido      `json:"cuerpo_tecnico"`

	FaltasLocalPrimera int `json:"faltas_local_primera"`
	FaltasLocalSegunda int `json:"faltas_local_segunda"`
	FaltasRivalPrimera int `json:"faltas_rival_primera"`
	FaltasRivalSegunda int `json:"faltas_rival_segunda"`
}

// CalcularFaltasPorParte recorre la cronología y rellena los contadores
// de faltas por parte del acta.
func (a *ActaPartido) CalcularFaltasPorParte() {
	a.FaltasLocalPrimera, a.FaltasLocalSegunda = 0, 0
	a.FaltasRivalPrimera, a.FaltasRivalSegunda = 0, 0
	for _, accion := range a.Acciones {
		if accion.Tipo != AccionFalta {
			continue
		}
		switch {
		case accion.EquipoLocal && accion.Parte == 1:
			a.FaltasLocalPrimera++
		case accion.EquipoLocal && accion.Parte == 2:
			a.FaltasLocalSegunda++
		case !accion.EquipoLocal && accion.Parte == 1:
			a.FaltasRivalPrimera++
		case !accion.EquipoLocal && accion.Parte == 2:
			a.FaltasRivalSegunda++
		}
	}
}
