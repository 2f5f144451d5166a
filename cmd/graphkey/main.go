// Command graphkey computes canonical keys of graphs written in the
// notation package's text form, deduplicates graph lists by isomorphism
// class, and benchmarks the search on builder families.
//
//	graphkey key "0-1-2-0" "a-b, b-c, c-a"
//	graphkey orbits "hub-a, hub-b, hub-c"
//	graphkey dedup --catalog ./classes.db graphs.txt
//	graphkey bench --family regular --n 200 --degree 3 --repeat 5
package main

import (
	"flag"
	"os"

	"github.com/plan-systems/klog"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	root := newRootCmd()
	root.PersistentFlags().AddGoFlagSet(fset)
	err := root.Execute()

	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
