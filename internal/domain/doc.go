// Package domain models the EIEL (Encuesta de Infraestructura y Equipamientos
// Locales) records that feed the municipal field forms.
//
// # Data Source
//
// All records come from the provincial EIEL PostgreSQL database. Every table
// is versioned by a "fase" column; the current snapshot is the maximum value
// stored in geonet_fase, and every query filters on it.
//
// # Municipality Codes
//
// Municipality codes ("mun") are province-scoped and stored as short strings.
// Forms and output filenames always use the three-digit, zero-padded form:
//
//	"7"   →  "007"
//	"12"  →  "012"
//	"123" →  "123"
//
// Codes longer than three characters are left untouched. The display name is
// looked up by padded code in the optional municipios.tsv mapping and falls
// back to the padded code itself.
//
// # Deposits
//
// A deposit is a water storage asset. The form only needs its name and the
// cleaning status recorded by the last survey (deposito_enc.limpieza). Both are
// rendered as empty strings when the source column is NULL.
//
// # Works
//
// A works record is a geonet_obras project still lacking some equipment.
// Two mutually exclusive rules select them, and each row carries the rule that
// matched:
//
//	cond 1: estado NULL or not in (FI, AN)  (neither finished nor cancelled)
//	cond 2: estado = FI                     (finished)
//
// Both rules additionally require at least one pending flag (equipamientos,
// alumbrado, infra_viaria, abastecimiento, saneamiento) to be NULL or 'SI', and
// proyecto to be NULL or anything but 'SI'. Rule-1 rows precede rule-2 rows.
package domain
