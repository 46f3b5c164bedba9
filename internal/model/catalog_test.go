package model

import "testing"

func TestCatalogShape(t *testing.T) {
	if len(GroupOrder) != 5 {
		t.Errorf("groups = %d, want 5", len(GroupOrder))
	}
	for _, g := range GroupOrder {
		if !ValidGroup(g) {
			t.Errorf("group %q missing from catalog", g)
		}
	}
	if ValidGroup("loewen") {
		t.Error("unknown group accepted")
	}

	if len(Tasks) != 8 {
		t.Errorf("tasks = %d, want 8", len(Tasks))
	}
	if TotalSubtasks() != 20 {
		t.Errorf("total subtasks = %d, want 20", TotalSubtasks())
	}
}

func TestSubtaskDistribution(t *testing.T) {
	want := []int{3, 2, 3, 2, 3, 3, 2, 2}
	for i, task := range Tasks {
		if len(task.Subtasks) != want[i] {
			t.Errorf("task %d has %d subtasks, want %d", task.ID, len(task.Subtasks), want[i])
		}
	}
}

func TestTaskIDsAreSequential(t *testing.T) {
	for i, task := range Tasks {
		if task.ID != i+1 {
			t.Errorf("task at index %d has id %d", i, task.ID)
		}
		if len(task.Subtasks) == 0 {
			t.Errorf("task %d has no subtasks", task.ID)
		}
	}
}

func TestTaskByID(t *testing.T) {
	task, ok := TaskByID(5)
	if !ok || task.ID != 5 {
		t.Fatalf("TaskByID(5) = %v, %v", task, ok)
	}
	if _, ok := TaskByID(0); ok {
		t.Error("TaskByID(0) must miss")
	}
	if _, ok := TaskByID(9); ok {
		t.Error("TaskByID(9) must miss")
	}
}

func TestSubtaskKeyFormat(t *testing.T) {
	if got := SubtaskKey(3, 0); got != "3-0" {
		t.Errorf("SubtaskKey(3,0) = %q", got)
	}
	if got := SubtaskKey(10, 12); got != "10-12" {
		t.Errorf("SubtaskKey(10,12) = %q", got)
	}
}

func TestRatingCatalog(t *testing.T) {
	if len(RatingQuestions) != 3 {
		t.Errorf("rating questions = %d, want 3", len(RatingQuestions))
	}
	if len(RatingOptions) != 4 {
		t.Errorf("rating options = %d, want 4", len(RatingOptions))
	}
	seen := map[int]bool{}
	for _, o := range RatingOptions {
		if o.Value < RatingValueMin || o.Value > RatingValueMax {
			t.Errorf("option value %d out of range", o.Value)
		}
		if seen[o.Value] {
			t.Errorf("duplicate option value %d", o.Value)
		}
		seen[o.Value] = true
	}
}

func TestRatingValueLookup(t *testing.T) {
	r := TaskRating{Enjoyed: 3, Useful: 1, Learned: 0}
	if r.Value(RatingEnjoyed) != 3 || r.Value(RatingUseful) != 1 || r.Value(RatingLearned) != 0 {
		t.Errorf("value lookup broken: %+v", r)
	}
	if r.Value("unbekannt") != -1 {
		t.Error("unknown question must yield -1")
	}
}
