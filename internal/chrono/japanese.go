package chrono

// Japanese imperial calendar: proleptic Gregorian dates partitioned into
// eras. Era values index japaneseEras; year-of-era counts from the era's
// first ISO year, so the same ISO year can span two eras (1912 is Meiji 45
// through July 29 and Taisho 1 from July 30).
type japaneseEra struct {
	name          string
	startEpochDay int64
	startYear     int64
}

// japaneseEras lists the supported eras in order of accession. The start
// days are built at init from the ISO conversion.
var japaneseEras = buildJapaneseEras()

func buildJapaneseEras() [5]japaneseEra {
	type accession struct {
		name              string
		year, month, day  int64
	}
	accessions := [5]accession{
		{"Meiji", 1868, 1, 1},
		{"Taisho", 1912, 7, 30},
		{"Showa", 1926, 12, 25},
		{"Heisei", 1989, 1, 8},
		{"Reiwa", 2019, 5, 1},
	}
	var eras [5]japaneseEra
	for i, a := range accessions {
		eras[i] = japaneseEra{
			name:          a.name,
			startEpochDay: isoEpochDayFromYMD(a.year, a.month, a.day),
			startYear:     a.year,
		}
	}
	return eras
}

// japaneseEraOfEpochDay returns the era value containing the epoch day:
// the last era whose accession is on or before it.
func japaneseEraOfEpochDay(epochDay int64) int64 {
	for i := len(japaneseEras) - 1; i > 0; i-- {
		if epochDay >= japaneseEras[i].startEpochDay {
			return int64(i)
		}
	}
	return 0
}

// japaneseYearOfEra returns the year-of-era for an ISO year within an era.
func japaneseYearOfEra(era, isoYear int64) int64 {
	return isoYear - japaneseEras[era].startYear + 1
}

// japaneseYearFromEraYoe returns the ISO year for an (era, year-of-era)
// pair.
func japaneseYearFromEraYoe(era, yearOfEra int64) int64 {
	return japaneseEras[era].startYear + yearOfEra - 1
}

// japaneseEraName returns the era's display name.
func japaneseEraName(era int64) string {
	return japaneseEras[era].name
}
