package main

import (
	"fmt"

	"github.com/maseology/gem"
	"github.com/maseology/mmio"
	log "github.com/sirupsen/logrus"
)

const controlFP = "M:/GEM-kennicott/build.gem" // "S:/GEM/peyto/build.gem" //

func main() {

	tt := mmio.NewTimer()
	defer tt.Print("\n\nprep complete!")

	fmt.Println("\nbuilding model domain..")
	if err := gem.BuildDomain(controlFP); err != nil {
		log.Fatalf("%v", err)
	}
}
