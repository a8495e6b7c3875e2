package postgres

// SQL text is kept identical to the statements the forms have always been
// generated from; only the placeholder style differs.
const (
	municipalitiesSQL = `
            SELECT DISTINCT mun
            FROM municipio
            WHERE fase = (SELECT max(fase) FROM geonet_fase) and prov = '03'
            ORDER BY mun;
        `

	depositsSQL = `
            SELECT d.mun, d.orden_depo, d.nombre, de.limpieza
            FROM deposito d
            LEFT JOIN deposito_enc de USING (fase, mun, orden_depo)
            WHERE d.fase = (SELECT max(fase) FROM geonet_fase) AND d.mun = $1
            ORDER BY d.orden_depo;
        `

	worksUnfinishedSQL = `
            SELECT mun, orden, nombre, plan_obra, 1 as cond
            FROM geonet_obras
            WHERE fase = (SELECT max(fase) FROM geonet_fase) 
            AND (estado IS NULL OR estado NOT IN ('FI','AN'))
            AND (equipamientos IS NULL OR equipamientos = 'SI'
                OR alumbrado IS NULL OR alumbrado = 'SI'
                OR infra_viaria IS NULL OR infra_viaria = 'SI'
                OR abastecimiento IS NULL OR abastecimiento = 'SI'
                OR saneamiento IS NULL OR saneamiento = 'SI')
            AND (proyecto IS NULL OR proyecto <> 'SI')
            AND mun = $1
        `

	worksFinishedSQL = `
            SELECT mun, orden, nombre, plan_obra, 2 as cond
            FROM geonet_obras
            WHERE fase = (SELECT max(fase) FROM geonet_fase) 
            AND estado = 'FI'
            AND (equipamientos IS NULL OR equipamientos = 'SI'
                OR alumbrado IS NULL OR alumbrado = 'SI'
                OR infra_viaria IS NULL OR infra_viaria = 'SI'
                OR abastecimiento IS NULL OR abastecimiento = 'SI'
                OR saneamiento IS NULL OR saneamiento = 'SI')
            AND (proyecto IS NULL OR proyecto <> 'SI')
            AND mun = $1
        `
)
