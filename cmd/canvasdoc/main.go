// canvasdoc loads tag-structured vector animation documents.
//
// Usage:
//
//	# Load the newest document in input/
//	canvasdoc load
//
//	# Load several documents in strict mode and write YAML summaries
//	canvasdoc load --strict --summary-out output a.sif b.sif
//
//	# Reload a document whenever it changes
//	canvasdoc watch scene.sif
//
//	# Evaluate an animated definition at 1.5s
//	canvasdoc sample scene.sif --id offset --time 1.5
package main

func main() {
	Execute()
}
