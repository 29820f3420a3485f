package jobtable

import (
	"testing"

	"cryoalign/internal/models"
)

func grid1D(n int) []models.Translation {
	t := make([]models.Translation, n)
	for i := range t {
		t[i] = models.Translation{X: float64(i), Y: 0, Z: 0}
	}
	return t
}

// Job-table well-formedness: every scheduled job's translations are valid
// indices into the shared translation array, and RotIdx[JobIdx[b]] names a
// valid orientation.
func TestBuildFine_JobsAreWellFormed(t *testing.T) {
	const orientationNum, translationNum, keep = 3, 6, 2
	trans := grid1D(translationNum)
	scores := make([]float64, orientationNum*translationNum)
	for o := 0; o < orientationNum; o++ {
		for i := 0; i < translationNum; i++ {
			scores[o*translationNum+i] = float64((i - o) * (i - o))
		}
	}

	jobs := BuildFine(scores, orientationNum, translationNum, trans, keep, ModeDiff2)

	if jobs.NumJobs() != orientationNum {
		t.Fatalf("NumJobs = %d, want %d", jobs.NumJobs(), orientationNum)
	}
	for b := 0; b < jobs.NumJobs(); b++ {
		jobIdx := jobs.JobIdx[b]
		n := jobs.JobNum[b]
		if n != keep {
			t.Fatalf("job %d: JobNum = %d, want %d", b, n, keep)
		}
		rot := jobs.RotIdx[jobIdx]
		if rot < 0 || rot >= orientationNum {
			t.Fatalf("job %d: RotIdx out of range: %d", b, rot)
		}
		for i := 0; i < n; i++ {
			idx := jobs.TransIdx[jobIdx+i]
			if idx < 0 || idx >= translationNum {
				t.Fatalf("job %d: TransIdx[%d] = %d out of range", b, i, idx)
			}
		}
	}
}

func TestBuildFine_PicksNeighborsOfPeak(t *testing.T) {
	const translationNum, keep = 8, 3
	trans := grid1D(translationNum)
	// Orientation 0's best (lowest) score sits at index 5.
	scores := make([]float64, translationNum)
	for i := range scores {
		scores[i] = float64((i - 5) * (i - 5))
	}

	jobs := BuildFine(scores, 1, translationNum, trans, keep, ModeDiff2)
	if jobs.NumJobs() != 1 {
		t.Fatalf("NumJobs = %d, want 1", jobs.NumJobs())
	}
	kept := map[int]bool{}
	for i := 0; i < jobs.JobNum[0]; i++ {
		kept[jobs.TransIdx[jobs.JobIdx[0]+i]] = true
	}
	if !kept[5] {
		t.Fatalf("expected peak index 5 to be kept, got %v", kept)
	}
}

func TestBuildFine_EmptyOnDegenerateInput(t *testing.T) {
	jobs := BuildFine(nil, 0, 0, nil, 1, ModeDiff2)
	if jobs.NumJobs() != 0 {
		t.Fatalf("expected no jobs for degenerate input, got %d", jobs.NumJobs())
	}
}
