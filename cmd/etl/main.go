// Command etl runs the microplastics metrics pipeline: it reads the source
// table, computes the regional indices and visualization datasets, and writes
// them as JSON documents.
//
// Usage:
//
//	etl run --input data/raw/microplastics.csv --output-dir data/processed
//	etl serve
package main

func main() {
	Execute()
}
