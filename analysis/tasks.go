// Copyright 2025 Ironleaf Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analysis

import (
	"fmt"

	"github.com/ironleaf/docmind/core"
)

// Supported analysis categories.
const (
	TypePliegoTecnico = "pliego_tecnico"
	TypeContrato      = "contrato"
	TypeOferta        = "oferta"
	TypeDocumentacion = "documentacion"
)

// TasksFor returns the prompt task catalog for an analysis category.
func TasksFor(analysisType string) ([]core.PromptTask, error) {
	switch analysisType {
	case TypePliegoTecnico:
		return tasksPliegoTecnico, nil
	case TypeContrato:
		return tasksContrato, nil
	case TypeOferta:
		return tasksOferta, nil
	case TypeDocumentacion:
		return tasksDocumentacion, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAnalysisType, analysisType)
	}
}

var tasksPliegoTecnico = []core.PromptTask{
	{
		Id:          "pliego_tecnico_1",
		Question:    `Extrae ÚNICAMENTE información sobre estaciones de monitoreo: número de estaciones, ubicaciones exactas, coordenadas si están disponibles. Responde en JSON con estructura: {"estaciones": [{"nombre": "...", "ubicacion": "...", "coordenadas": "..."}], "total": 0}`,
		ResultField: "estaciones",
	},
	{
		Id:          "pliego_tecnico_2",
		Question:    `Extrae ÚNICAMENTE información sobre sensores a instalar: tipos de sensores, modelos específicos, marcas requeridas. Responde en JSON con estructura: {"sensores": [{"tipo": "...", "modelo": "...", "marca": "..."}]}`,
		ResultField: "sensores",
	},
	{
		Id:          "pliego_tecnico_3",
		Question:    `Extrae ÚNICAMENTE información sobre rangos de medición y precisiones requeridas para cada sensor o equipo. Responde en JSON con estructura: {"especificaciones": [{"equipo": "...", "rango": "...", "precision": "...", "unidad": "..."}]}`,
		ResultField: "especificaciones_tecnicas",
	},
	{
		Id:          "pliego_tecnico_4",
		Question:    `Calcula o extrae ÚNICAMENTE las distancias desde Madrid a las ubicaciones mencionadas en el documento. Si no hay información explícita, indica "No especificado". Responde en JSON con estructura: {"distancias": [{"ubicacion": "...", "distancia_desde_madrid": "...", "unidad": "km"}]}`,
		ResultField: "distancias",
	},
	{
		Id:          "pliego_tecnico_5",
		Question:    `Extrae ÚNICAMENTE información sobre tiempos y plazos de instalación: duración estimada, plazos de entrega, hitos temporales. Responde en JSON con estructura: {"plazos": {"instalacion": "...", "entrega": "...", "hitos": [{"nombre": "...", "plazo": "..."}]}}`,
		ResultField: "plazos_instalacion",
	},
	{
		Id:          "pliego_tecnico_6",
		Question:    `Extrae ÚNICAMENTE información sobre normativas aplicables: normas técnicas, regulaciones, estándares que debe cumplir el proyecto. Responde en JSON con estructura: {"normativas": [{"codigo": "...", "descripcion": "...", "ambito": "..."}]}`,
		ResultField: "normativas",
	},
	{
		Id:          "pliego_tecnico_7",
		Question:    `Extrae ÚNICAMENTE información sobre requisitos de conectividad y comunicaciones: protocolos, redes, sistemas SCADA, transmisión de datos. Responde en JSON con estructura: {"conectividad": {"protocolo": "...", "tipo_red": "...", "sistema_scada": "...", "requisitos_adicionales": []}}`,
		ResultField: "conectividad",
	},
	{
		Id:          "pliego_tecnico_8",
		Question:    `Extrae ÚNICAMENTE información sobre requisitos de alimentación eléctrica: tensiones, potencias, sistemas de respaldo, baterías. Responde en JSON con estructura: {"alimentacion": {"tension": "...", "potencia": "...", "respaldo": "...", "autonomia": "..."}}`,
		ResultField: "alimentacion",
	},
	{
		Id:          "pliego_tecnico_9",
		Question:    `Extrae ÚNICAMENTE información sobre garantías, mantenimiento y soporte técnico requeridos. Responde en JSON con estructura: {"garantia_mantenimiento": {"periodo_garantia": "...", "mantenimiento_preventivo": "...", "soporte_tecnico": "...", "formacion": "..."}}`,
		ResultField: "garantia_mantenimiento",
	},
	{
		Id:          "pliego_tecnico_10",
		Question:    `Identifica ÚNICAMENTE los principales riesgos técnicos, ambientales o logísticos del proyecto y sus mitigaciones propuestas. Responde en JSON con estructura: {"riesgos": [{"tipo": "...", "descripcion": "...", "impacto": "alto/medio/bajo", "mitigacion": "..."}]}`,
		ResultField: "riesgos",
	},
}

var tasksContrato = []core.PromptTask{
	{
		Id:          "contrato_1",
		Question:    `Analiza el contrato y extrae información sobre el OBJETO DEL CONTRATO: ¿Qué se está contratando? ¿Cuál es el alcance del trabajo? ¿Qué servicios o productos incluye? ¿Hay exclusiones específicas? Responde en JSON con estructura: {"objeto_contrato": {"descripcion": "...", "alcance": "...", "servicios_incluidos": ["..."], "exclusiones": ["..."]}}`,
		ResultField: "objeto_contrato",
	},
	{
		Id:          "contrato_2",
		Question:    `Extrae las OBLIGACIONES DEL CONTRATISTA: ¿Qué debe hacer el contratista? ¿Qué entregables debe proporcionar? ¿Qué estándares de calidad debe cumplir? ¿Hay certificaciones requeridas? Responde en JSON con estructura: {"obligaciones_contratista": [{"tipo": "...", "descripcion": "...", "entregable": "...", "estandar_calidad": "...", "importancia": "crítica/alta/media"}]}`,
		ResultField: "obligaciones_contratista",
	},
	{
		Id:          "contrato_3",
		Question:    `Analiza PLAZOS Y CRONOGRAMA: ¿Cuándo inicia y termina el contrato? ¿Qué hitos intermedios hay? ¿Hay plazos parciales de entrega? ¿Cuál es el plazo de ejecución? Responde en JSON con estructura: {"plazos": {"fecha_inicio": "...", "fecha_fin": "...", "duracion": "...", "hitos": [{"nombre": "...", "fecha": "...", "descripcion": "..."}], "plazos_parciales": ["..."]}}`,
		ResultField: "plazos_contractuales",
	},
	{
		Id:          "contrato_4",
		Question:    `Identifica ASPECTOS ECONÓMICOS: ¿Cuál es el presupuesto o valor del contrato? ¿Cómo se estructura el pago? ¿Hay anticipos? ¿Hay conceptos variables o fijos? ¿Se menciona IVA u otros impuestos? Responde en JSON con estructura: {"aspectos_economicos": {"presupuesto_total": "...", "estructura_pago": "...", "anticipos": "...", "forma_pago": "...", "impuestos": "...", "conceptos": ["..."]}}`,
		ResultField: "aspectos_economicos",
	},
	{
		Id:          "contrato_5",
		Question:    `Extrae PENALIZACIONES, MULTAS E INCENTIVOS: ¿Qué penalizaciones hay por incumplimiento? ¿Cuándo se aplican? ¿Qué montos tienen? ¿Hay incentivos por cumplimiento anticipado o calidad superior? Responde en JSON con estructura: {"penalizaciones_incentivos": {"penalizaciones": [{"concepto": "...", "condicion": "...", "monto": "...", "severidad": "..."}], "incentivos": [{"concepto": "...", "condicion": "...", "beneficio": "..."}]}}`,
		ResultField: "penalizaciones_incentivos",
	},
	{
		Id:          "contrato_6",
		Question:    `Analiza GARANTÍAS Y SEGUROS: ¿Qué garantías debe aportar el contratista? ¿Fianzas, avales, seguros? ¿Qué montos? ¿Por cuánto tiempo? ¿Garantía de obra? ¿Responsabilidad civil? Responde en JSON con estructura: {"garantias_seguros": {"garantias": [{"tipo": "...", "monto": "...", "duracion": "...", "descripcion": "..."}], "seguros_requeridos": [{"tipo": "...", "cobertura": "...", "monto_minimo": "..."}]}}`,
		ResultField: "garantias_seguros",
	},
	{
		Id:          "contrato_7",
		Question:    `Identifica CONDICIONES DE EJECUCIÓN: ¿Dónde se ejecutará el trabajo? ¿Hay restricciones horarias? ¿Requisitos de seguridad? ¿Coordinación con otros contratistas? ¿Permisos necesarios? Responde en JSON con estructura: {"condiciones_ejecucion": {"ubicacion": "...", "horarios": "...", "seguridad": ["..."], "coordinacion": "...", "permisos": ["..."]}}`,
		ResultField: "condiciones_ejecucion",
	},
	{
		Id:          "contrato_8",
		Question:    `Analiza CAUSAS DE RESOLUCIÓN Y RESCISIÓN: ¿En qué casos se puede terminar el contrato? ¿Qué pasa si alguna parte incumple? ¿Hay cláusulas de salida? ¿Consecuencias de la rescisión? Responde en JSON con estructura: {"resolucion_rescision": {"causas": [{"tipo": "...", "descripcion": "...", "quien_puede_invocar": "..."}], "consecuencias": ["..."], "procedimiento": "..."}}`,
		ResultField: "resolucion_rescision",
	},
	{
		Id:          "contrato_9",
		Question:    `Extrae CONFIDENCIALIDAD, PROPIEDAD INTELECTUAL Y PROTECCIÓN DE DATOS: ¿Hay cláusulas de confidencialidad? ¿De quién es la propiedad intelectual? ¿Hay tratamiento de datos personales? ¿RGPD aplicable? Responde en JSON con estructura: {"confidencialidad_pi_datos": {"confidencialidad": {"alcance": "...", "duracion": "...", "excepciones": ["..."]}, "propiedad_intelectual": "...", "proteccion_datos": "..."}}`,
		ResultField: "confidencialidad_pi_datos",
	},
	{
		Id:          "contrato_10",
		Question:    `Identifica RIESGOS LEGALES Y RECOMENDACIONES: ¿Qué cláusulas son más desfavorables para el contratista? ¿Qué aspectos son ambiguos o pueden generar conflictos? ¿Qué riesgos se identifican? ¿Qué se recomienda negociar o aclarar? Responde en JSON con estructura: {"riesgos_recomendaciones": {"riesgos": [{"tipo": "...", "descripcion": "...", "gravedad": "alta/media/baja", "probabilidad": "..."}], "clausulas_desfavorables": ["..."], "recomendaciones": ["..."]}}`,
		ResultField: "riesgos_recomendaciones",
	},
}

var tasksOferta = []core.PromptTask{
	{
		Id:          "oferta_1",
		Question:    `Basándote en el contexto, genera ÚNICAMENTE una propuesta técnica resumida de la solución. Responde en JSON con estructura: {"propuesta_tecnica": "..."}`,
		ResultField: "propuesta_tecnica",
	},
	{
		Id:          "oferta_2",
		Question:    `Basándote en el contexto, define ÚNICAMENTE el alcance detallado del proyecto. Responde en JSON con estructura: {"alcance": "..."}`,
		ResultField: "alcance",
	},
	{
		Id:          "oferta_3",
		Question:    `Basándote en el contexto, estima ÚNICAMENTE los plazos de ejecución del proyecto. Responde en JSON con estructura: {"plazos": "..."}`,
		ResultField: "plazos",
	},
	{
		Id:          "oferta_4",
		Question:    `Basándote en el contexto, genera ÚNICAMENTE una lista de conceptos de precio (sin valores monetarios, solo descripciones). Responde en JSON con estructura: {"conceptos_precio": ["Concepto 1: ...", "Concepto 2: ..."]}`,
		ResultField: "conceptos_precio",
	},
}

var tasksDocumentacion = []core.PromptTask{
	{
		Id:          "documentacion_1",
		Question:    `Genera ÚNICAMENTE una introducción y resumen ejecutivo del documento técnico. Responde en JSON con estructura: {"introduccion": "..."}`,
		ResultField: "introduccion",
	},
	{
		Id:          "documentacion_2",
		Question:    `Genera ÚNICAMENTE las secciones principales del documento técnico con sus contenidos. Responde en JSON con estructura: {"secciones": [{"titulo": "...", "contenido": "..."}]}`,
		ResultField: "secciones",
	},
	{
		Id:          "documentacion_3",
		Question:    `Genera ÚNICAMENTE conclusiones y recomendaciones para el documento técnico. Responde en JSON con estructura: {"conclusiones": "..."}`,
		ResultField: "conclusiones",
	},
}
