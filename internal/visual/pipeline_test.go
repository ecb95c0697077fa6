package visual

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("frame pipeline", func() {
	var (
		r    *fakeRenderer
		sink *memSink
		rec  *recorder
		s    *State
	)

	BeforeEach(func() {
		r = newFakeRenderer()
		sink = newMemSink()
		rec = newRecorder()
	})

	Context("while earlier frames are still rendering", func() {
		BeforeEach(func() {
			r.hold = make(chan struct{})
			s = mustNew([]uint32{1, 2, 3, 4}, Options{
				Name:      "rot",
				Renderer:  r,
				Sink:      sink,
				Capacity:  2,
				Observers: []Observer{rec},
			})
		})

		It("renders each frame from the array as it was when issued", func() {
			expected := make([]string, 0, 8)
			for i := 0; i < 8; i++ {
				s.Swap(i%4, (i+1)%4)
				expected = append(expected, fmt.Sprint(s.Values()))
			}
			close(r.hold)

			Expect(s.Finish()).To(Succeed())
			for n, want := range expected {
				got, ok := sink.get(fmt.Sprintf("rot-%d.png", n))
				Expect(ok).To(BeTrue(), "frame %d missing", n)
				Expect(got).To(Equal(want), "frame %d", n)
			}
		})

		It("numbers frames in the order operations were issued", func() {
			s.Swap(0, 1)
			s.SetHighlight(3, 0.5)
			s.Compare(2, 3)
			s.Swap(2, 3)
			Expect(s.Frames()).To(Equal(3))
			close(r.hold)

			Expect(s.Finish()).To(Succeed())
			Expect(rec.queued).To(Equal([]int{0, 1, 2}))
			Expect(rec.written).To(HaveLen(3))

			snap, ok := r.snapshot(2)
			Expect(ok).To(BeTrue())
			Expect(snap.Highlights.Get(3)).To(Equal(SwapIntensity))
			Expect(snap.Highlights.Get(2)).To(Equal(SwapIntensity))

			snap, _ = r.snapshot(1)
			Expect(snap.Highlights.Get(2)).To(Equal(CompareIntensity))
			Expect(snap.Highlights.Get(3)).To(Equal(0.5))
		})
	})

	Context("with an instrumented gate", func() {
		It("keeps concurrent frames at or below capacity", func() {
			gate := newCountingGate(4)
			r.delay = time.Millisecond
			s = mustNew([]uint32{5, 4, 3, 2, 1}, Options{Renderer: r, Sink: sink, Gate: gate})

			for i := 0; i < 40; i++ {
				s.Swap(i%5, (i+2)%5)
			}
			Expect(s.Finish()).To(Succeed())

			Expect(gate.peak.Load()).To(BeNumerically("<=", 4))
			Expect(gate.cur.Load()).To(BeZero())
			Expect(sink.len()).To(Equal(40))
		})
	})

	Context("when a frame fails", func() {
		It("drains every frame and reports the failure from Finish", func() {
			r.fail[1] = fmt.Errorf("encoder exploded")
			s = mustNew([]uint32{2, 1}, Options{Renderer: r, Sink: sink, Observers: []Observer{rec}})

			s.Swap(0, 1)
			s.Swap(0, 1)
			s.Swap(0, 1)

			err := s.Finish()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("frame 1"))
			Expect(rec.written).To(HaveLen(3))
			Expect(sink.len()).To(Equal(2))
		})
	})
})
