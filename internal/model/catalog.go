package model

import "fmt"

// Group 固定的五个小组标识
type Group string

const (
	GroupNilpferde     Group = "nilpferde"
	GroupAmeise        Group = "ameise"
	GroupSchildkroeten Group = "schildkroeten"
	GroupDrachen       Group = "drachen"
	GroupKuehe         Group = "kuehe"
)

// GroupInfo 小组展示信息
type GroupInfo struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// Groups 小组目录（代码内置，不落库）
var Groups = map[Group]GroupInfo{
	GroupNilpferde:     {Name: "Nilpferde", Emoji: "🦛", Color: "#3498db"},
	GroupAmeise:        {Name: "Ameise", Emoji: "🐜", Color: "#e74c3c"},
	GroupSchildkroeten: {Name: "Schildkröten", Emoji: "🐢", Color: "#2ecc71"},
	GroupDrachen:       {Name: "Drachen", Emoji: "🐉", Color: "#f39c12"},
	GroupKuehe:         {Name: "Kühe", Emoji: "🐄", Color: "#9b59b6"},
}

// GroupOrder 统计输出时的固定顺序
var GroupOrder = []Group{GroupNilpferde, GroupAmeise, GroupSchildkroeten, GroupDrachen, GroupKuehe}

func ValidGroup(g Group) bool {
	_, ok := Groups[g]
	return ok
}

type TaskType string

const (
	TaskIndividual TaskType = "individual"
	TaskGroup      TaskType = "group"
)

// Task 任务目录条目，子任务按下标定位（下标即身份）
type Task struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Type          TaskType `json:"type"`
	LionColor     string   `json:"lionColor"`
	LionEmoji     string   `json:"lionEmoji"`
	Subtasks      []string `json:"subtasks"`
	PDFID         string   `json:"pdfId,omitempty"`
	WhiteboardURL string   `json:"whiteboardUrl,omitempty"`
	PadletURLEBA  string   `json:"padletUrlEBA,omitempty"`
	PadletURLEFZ  string   `json:"padletUrlEFZ,omitempty"`
}

// Tasks 八个固定任务
var Tasks = []Task{
	{
		ID: 1, Title: "Ein KI-Chatbot steht zur Verfügung", Type: TaskIndividual,
		LionColor: "red", LionEmoji: "🦁",
		Subtasks: []string{
			"Ich habe Zugriff auf den KI-Chat von Microsoft",
			"Ich weiss, dass ich den Input genau definieren muss",
			"Ich habe dem Chatbot eine erste Testfrage gestellt",
		},
		PDFID: "task1",
	},
	{
		ID: 2, Title: "Registrierung Schullizenz", Type: TaskIndividual,
		LionColor: "blue", LionEmoji: "🦁",
		Subtasks: []string{
			"Ich bin bei Fobizz registriert",
			"Ich habe den Pro-Plan in to-teach.ai",
		},
		PDFID: "task2",
	},
	{
		ID: 3, Title: "Erste Schritte in to-teach.ai", Type: TaskIndividual,
		LionColor: "green", LionEmoji: "🦁",
		Subtasks: []string{
			"Ich habe ein Youtube-Aufgabenblatt erstellt",
			"Ich habe eine Powerpoint erstellt",
			"Ich habe eine Infografik erstellt",
		},
		PDFID: "task3",
	},
	{
		ID: 4, Title: "Gruppenarbeit A", Type: TaskGroup,
		LionColor: "orange", LionEmoji: "👥",
		Subtasks: []string{
			"Zwischenstandkontrolle in der Gruppe",
			"Einzellinks sind auf dem Whiteboard festgehalten",
		},
		WhiteboardURL: "https://example.com/whiteboard-a",
	},
	{
		ID: 5, Title: "Aufgabenbausteine kennenlernen", Type: TaskIndividual,
		LionColor: "purple", LionEmoji: "🦁",
		Subtasks: []string{
			"Ich habe den Baustein „Aussagen\" erstellt",
			"Ich habe den Baustein „Mindmap\" erstellt",
			"Ich habe den Baustein „Whatsapp Chat\" erstellt",
		},
		PDFID: "task5",
	},
	{
		ID: 6, Title: "Organisation von to-teach.ai-Inhalten", Type: TaskIndividual,
		LionColor: "yellow", LionEmoji: "🦁",
		Subtasks: []string{
			"Ich habe zwei Ordner erstellt",
			"Ich habe einen Kurs erstellt",
			"Ich habe eine Aufgabe in einen Ordner verschoben",
		},
		PDFID: "task6",
	},
	{
		ID: 7, Title: "Gruppenarbeit B", Type: TaskGroup,
		LionColor: "teal", LionEmoji: "👥",
		Subtasks: []string{
			"Zwischenstandkontrolle in der Gruppe",
			"Einzellinks sind auf dem Whiteboard festgehalten",
		},
		WhiteboardURL: "https://example.com/whiteboard-b",
	},
	{
		ID: 8, Title: "Gruppenarbeit C", Type: TaskGroup,
		LionColor: "pink", LionEmoji: "👥",
		Subtasks: []string{
			"Entscheid in der Gruppe, welche Links auf das Padlet kommen",
			"Mindestens fünf Links mit Begründung",
		},
		PadletURLEBA: "https://padlet.com/DLHOrganisation/unsere-to-teach-wand-eba-rnt6ksnune532gbl",
		PadletURLEFZ: "https://padlet.com/DLHOrganisation/unsere-to-teach-wand-efz-y1dnbn9a2todhlo1",
	},
}

func TaskByID(id int) (*Task, bool) {
	for i := range Tasks {
		if Tasks[i].ID == id {
			return &Tasks[i], true
		}
	}
	return nil, false
}

// SubtaskKey 组合键 "<taskId>-<subtaskIndex>"，对应 completedSubtasks 的键
func SubtaskKey(taskID, subtaskIndex int) string {
	return fmt.Sprintf("%d-%d", taskID, subtaskIndex)
}

// TotalSubtasks 目录中所有子任务的总数（当前目录为 20）
func TotalSubtasks() int {
	total := 0
	for _, t := range Tasks {
		total += len(t.Subtasks)
	}
	return total
}

// RatingQuestionID 三个评价问题的固定标识
type RatingQuestionID string

const (
	RatingEnjoyed RatingQuestionID = "enjoyed"
	RatingUseful  RatingQuestionID = "useful"
	RatingLearned RatingQuestionID = "learned"
)

type RatingQuestion struct {
	ID    RatingQuestionID `json:"id"`
	Label string           `json:"label"`
	Emoji string           `json:"emoji"`
}

var RatingQuestions = []RatingQuestion{
	{ID: RatingEnjoyed, Label: "Hat es mir Spaß gemacht?", Emoji: "😊"},
	{ID: RatingUseful, Label: "War es sinnvoll?", Emoji: "💡"},
	{ID: RatingLearned, Label: "Habe ich etwas gelernt?", Emoji: "📚"},
}

// RatingOption 四档评分，0 最差、3 最好
type RatingOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

var RatingOptions = []RatingOption{
	{Value: 3, Label: "Sehr", Emoji: "👍", Color: "#4caf50"},
	{Value: 2, Label: "Eher ja", Emoji: "✔", Color: "#8bc34a"},
	{Value: 1, Label: "Eher nein", Emoji: "✗", Color: "#ff9800"},
	{Value: 0, Label: "Gar nicht", Emoji: "👎", Color: "#f44336"},
}

const (
	RatingValueMin = 0
	RatingValueMax = 3
)
