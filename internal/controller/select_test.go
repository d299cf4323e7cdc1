package controller_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/euf-controller/internal/controller"
	"github.com/sarchlab/euf-controller/internal/model"
)

func mkConfig(freq int64, cores int, ht bool, power, tps float64) model.Configuration {
	return model.New(freq, cores, ht, 1, power, tps)
}

var _ = Describe("Select", func() {
	candidates := []model.Configuration{
		mkConfig(1_200_000, 2, false, 2.0, 120_000),
		mkConfig(2_400_000, 2, false, 4.0, 240_000),
		mkConfig(2_400_000, 4, true, 8.0, 960_000),
	}

	It("returns the sole candidate when there is only one (P4/P6 base case)", func() {
		result := controller.Select([]model.Configuration{candidates[0]}, nil, nil)
		Expect(result).To(Equal(candidates[0]))
	})

	It("picks the minimum-power candidate with no target (P4)", func() {
		result := controller.Select(candidates, nil, nil)
		Expect(result.PowerW).To(Equal(2.0))
	})

	It("meets a feasible target at minimum power (P5)", func() {
		target := 500_000.0
		result := controller.Select(candidates, &target, &candidates[0])

		Expect(result.TPS).To(BeNumerically(">=", target))
		Expect(result).To(Equal(candidates[2]))
	})

	It("climbs to the highest-throughput candidate when infeasible (P6)", func() {
		target := 10_000_000.0
		result := controller.Select(candidates, &target, &candidates[0])

		Expect(result.TPS).To(Equal(candidates[2].TPS))
	})

	It("matches the spec's adaptation-up worked example", func() {
		target := 500_000.0
		seed := mkConfig(1_200_000, 2, false, 2.0, 120_000)

		result := controller.Select(candidates, &target, &seed)

		Expect(result.Cores).To(Equal(4))
		Expect(result.HT).To(BeTrue())
		Expect(result.FreqKHz).To(Equal(int64(2_400_000)))
	})
})
