package service

import (
	"context"
	"fmt"
	"math"

	"weiterbildung_backend/internal/model"
	"weiterbildung_backend/internal/util"
)

// 本文件的聚合函数都是纯函数：不做 I/O，对良构输入从不报错，
// 空集合返回零值统计。completedSubtasks/ratings 缺失（nil）
// 一律当空映射处理，存储里可能有这种旧记录。

// ProgressSummary 单个用户的完成度
type ProgressSummary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// GroupSummary 单个小组的参与人数和平均完成度
type GroupSummary struct {
	Group       model.Group `json:"group"`
	Count       int         `json:"count"`
	AvgProgress int         `json:"avgProgress"`
}

// SubtaskCount 单个子任务的完成人数
type SubtaskCount struct {
	Completed int `json:"completed"`
}

// RatingHistogram 每个问题一个 4 桶计数，下标即选项值 0–3。
// Respondents 按任务计一次：评价总是三个问题一起提交。
type RatingHistogram struct {
	Enjoyed     [4]int `json:"enjoyed"`
	Useful      [4]int `json:"useful"`
	Learned     [4]int `json:"learned"`
	Respondents int    `json:"total"`
}

// TaskStats 单个任务在给定用户子集上的统计
type TaskStats struct {
	Total      int             `json:"total"`
	Completed  int             `json:"completed"`
	Percentage int             `json:"percentage"`
	Subtasks   []SubtaskCount  `json:"subtasks"`
	Ratings    RatingHistogram `json:"ratings"`
}

// roundPct 四舍五入的百分比，whole 为 0 时定义为 0（不除零）
func roundPct(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}

// UserProgress 用户完成度：已勾选的子任务键数 / 目录子任务总数
func UserProgress(u *model.User) ProgressSummary {
	total := model.TotalSubtasks()
	completed := len(u.CompletedSubtasks)
	return ProgressSummary{
		Completed:  completed,
		Total:      total,
		Percentage: roundPct(completed, total),
	}
}

// GroupStats 小组统计。平均值是组内原始完成数之和除以组的
// 总子任务容量——目录对所有人相同时等价于组员个人百分比的均值。
func GroupStats(users []model.User, group model.Group) GroupSummary {
	total := model.TotalSubtasks()
	count := 0
	completed := 0
	for i := range users {
		if users[i].Group != group {
			continue
		}
		count++
		completed += len(users[i].CompletedSubtasks)
	}

	return GroupSummary{
		Group:       group,
		Count:       count,
		AvgProgress: roundPct(completed, total*count),
	}
}

// ComputeTaskStats 给定任务在用户子集上的统计。
// 只有该任务全部子任务键都在的用户才计入 Completed；
// 评分直方图按选项值入桶，回答者按任务计一次。
func ComputeTaskStats(users []model.User, task model.Task) TaskStats {
	stats := TaskStats{
		Total:    len(users),
		Subtasks: make([]SubtaskCount, len(task.Subtasks)),
	}

	for i := range users {
		u := &users[i]

		taskCompleted := true
		for subIdx := range task.Subtasks {
			if _, ok := u.CompletedSubtasks[model.SubtaskKey(task.ID, subIdx)]; ok {
				stats.Subtasks[subIdx].Completed++
			} else {
				taskCompleted = false
			}
		}
		if taskCompleted {
			stats.Completed++
		}

		if rating, ok := u.Ratings[task.ID]; ok {
			stats.Ratings.Respondents++
			bump(&stats.Ratings.Enjoyed, rating.Enjoyed)
			bump(&stats.Ratings.Useful, rating.Useful)
			bump(&stats.Ratings.Learned, rating.Learned)
		}
	}

	stats.Percentage = roundPct(stats.Completed, stats.Total)
	return stats
}

// bump 越界的值不入桶（防御：存储可能回传旧的或手改过的记录）
func bump(buckets *[4]int, value int) {
	if value >= model.RatingValueMin && value <= model.RatingValueMax {
		buckets[value]++
	}
}

// HalfwayCount 完成度达到 50% 的用户数
func HalfwayCount(users []model.User) int {
	count := 0
	for i := range users {
		if UserProgress(&users[i]).Percentage >= 50 {
			count++
		}
	}
	return count
}

// ───────────────────────────────────────────────

// StatsStore 统计视图需要的快照读取
type StatsStore interface {
	FindAll(ctx context.Context) ([]model.User, error)
}

// StatsService 把一次性取出的快照组装成统计视图。
// 快照在并发写入面前会过期，容忍窗口是“到下次刷新为止”。
type StatsService struct {
	UserRepo StatsStore
}

func NewStatsService(userRepo StatsStore) *StatsService {
	return &StatsService{UserRepo: userRepo}
}

// TaskStatsView 任务目录条目加它的统计
type TaskStatsView struct {
	Task  model.Task `json:"task"`
	Stats TaskStats  `json:"stats"`
}

// Overview 统计页视图：小组概览永远基于全量参与者，
// 任务统计可按小组过滤
type Overview struct {
	Groups        []GroupSummary  `json:"groups"`
	Tasks         []TaskStatsView `json:"tasks"`
	TotalSubtasks int             `json:"totalSubtasks"`
	TotalUsers    int             `json:"totalUsers"`
}

func (s *StatsService) Overview(ctx context.Context, group model.Group) (*Overview, error) {
	participants, err := s.participants(ctx)
	if err != nil {
		return nil, err
	}

	subset := participants
	if group != "" {
		subset = nil
		for i := range participants {
			if participants[i].Group == group {
				subset = append(subset, participants[i])
			}
		}
	}

	view := &Overview{
		TotalSubtasks: model.TotalSubtasks(),
		TotalUsers:    len(participants),
	}
	for _, g := range model.GroupOrder {
		view.Groups = append(view.Groups, GroupStats(participants, g))
	}
	for _, task := range model.Tasks {
		view.Tasks = append(view.Tasks, TaskStatsView{Task: task, Stats: ComputeTaskStats(subset, task)})
	}

	return view, nil
}

// DashboardSummary 管理面板的头部数字
type DashboardSummary struct {
	TotalUsers    int            `json:"totalUsers"`
	HalfwayCount  int            `json:"halfwayCount"`
	Groups        []GroupSummary `json:"groups"`
	TotalSubtasks int            `json:"totalSubtasks"`
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	participants, err := s.participants(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalUsers:    len(participants),
		HalfwayCount:  HalfwayCount(participants),
		TotalSubtasks: model.TotalSubtasks(),
	}
	for _, g := range model.GroupOrder {
		summary.Groups = append(summary.Groups, GroupStats(participants, g))
	}

	return summary, nil
}

// participants 统计只看参与者，管理员账号不计入
func (s *StatsService) participants(ctx context.Context) ([]model.User, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreUnavailable, err)
	}

	participants := users[:0:0]
	for i := range users {
		if users[i].Role != model.Admin {
			participants = append(participants, users[i])
		}
	}
	return participants, nil
}
