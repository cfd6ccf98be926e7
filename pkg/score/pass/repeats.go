package pass

import "github.com/fernandoherreradelasheras/verovio/pkg/score"

// PrepareRepeats numbers measure-repeat marks. A chain of consecutive
// repeats in the same voice counts statements of the repeated measure, so
// the first mark reads 2, the next 3, and so on. A measure without a
// repeat mark for the voice breaks its chain.
func PrepareRepeats(d *score.Doc) {
	chains := make(map[[2]int]int)

	for _, m := range d.Measures() {
		continued := make(map[[2]int]bool)
		for _, st := range m.Staves() {
			for _, l := range st.Layers() {
				key := [2]int{st.N(), l.N()}
				for _, e := range l.Elements() {
					r, ok := e.(*score.MRpt)
					if !ok {
						continue
					}
					chains[key]++
					r.SetNum(chains[key] + 1)
					continued[key] = true
				}
			}
		}
		for key := range chains {
			if !continued[key] {
				delete(chains, key)
			}
		}
	}
}
