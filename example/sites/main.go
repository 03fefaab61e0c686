package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/carbocation/vcfld"
)

func main() {
	idxPath := flag.String("sites", "", "Filename of a sites index written by vcfld -sites-db")
	limit := flag.Int("limit", 30, "Print only every Nth site")
	flag.Parse()

	if *idxPath == "" {
		flag.PrintDefaults()
		log.Fatalln("No sites index given")
	}

	path, err := vcfld.ExpandHome(*idxPath)
	if err != nil {
		log.Fatalln(err)
	}

	idx, err := vcfld.OpenSitesIndex(path)
	if err != nil {
		log.Fatalln(err)
	}
	defer idx.Close()

	log.Printf("Sites metadata: %+v (driver %s)\n", *idx.Metadata, vcfld.WhichSQLiteDriver())

	rows, err := idx.DB.Queryx("SELECT * FROM Variant ORDER BY rowid ASC")
	if err != nil {
		log.Fatalln(err)
	}
	defer rows.Close()

	i := 0
	var row vcfld.SiteIndex
	for rows.Next() {
		if err := rows.StructScan(&row); err != nil {
			log.Fatalln(err)
		}
		if *limit > 0 && i%*limit == 0 {
			fmt.Printf("%d) %+v\n", i, row)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		log.Fatalln(err)
	}

	log.Println("Saw", i, "sites")
}
