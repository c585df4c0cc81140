package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RecoveryAshes/YCHarvest/internal/models"
	"github.com/schollz/progressbar/v3"
)

// SnapshotWriter 检查点写入器
// 将当前完整记录集合序列化为两种持久化形式:
//   - 行式: CSV表格
//   - 树式: JSON文档
// 始终整体覆盖写入(而非追加),保证最新检查点是完整一致的视图。
// 单线程协作式驱动,同一次运行内不会并发调用。
type SnapshotWriter struct {
	dataDir   string // 运行级数据目录
	timestamp string // 运行时间戳,用于文件命名
}

// NewSnapshotWriter 创建检查点写入器
// 数据目录: <outputDir>/output_<timestamp>/data/
func NewSnapshotWriter(outputDir string, timestamp string) (*SnapshotWriter, error) {
	dataDir := filepath.Join(outputDir, fmt.Sprintf("output_%s", timestamp), "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &SnapshotWriter{dataDir: dataDir, timestamp: timestamp}, nil
}

// DataDir 返回运行级数据目录
func (w *SnapshotWriter) DataDir() string {
	return w.dataDir
}

// WriteProgress 写入进度检查点(文件名带progress标记)
// 第一遍每N条捕获、第二遍每个分块结束后调用
func (w *SnapshotWriter) WriteProgress(records []*models.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := w.write(records, "_progress"); err != nil {
		return err
	}
	Infof("进度已保存: %d 条记录", len(records))
	return nil
}

// WriteFinal 写入最终数据,取代进度检查点
// 返回CSV和JSON文件路径
func (w *SnapshotWriter) WriteFinal(records []*models.Record) (string, string, error) {
	if err := w.write(records, ""); err != nil {
		return "", "", err
	}
	csvFile, jsonFile := w.filePaths("")
	Infof("✅ 最终数据已保存: %d 条记录 -> %s", len(records), w.dataDir)
	return csvFile, jsonFile, nil
}

// WriteRunReport 保存运行报告JSON
func (w *SnapshotWriter) WriteRunReport(report *models.RunReport) error {
	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("序列化运行报告失败: %w", err)
	}
	reportFile := filepath.Join(w.dataDir, "run_report.json")
	if err := os.WriteFile(reportFile, data, 0644); err != nil {
		return fmt.Errorf("写入运行报告失败: %w", err)
	}
	Debugf("保存运行报告: %s", reportFile)
	return nil
}

// filePaths 生成CSV/JSON文件路径
func (w *SnapshotWriter) filePaths(marker string) (string, string) {
	base := fmt.Sprintf("companies_%s%s", w.timestamp, marker)
	return filepath.Join(w.dataDir, base+".csv"), filepath.Join(w.dataDir, base+".json")
}

// write 覆盖写入CSV和JSON两种形式
func (w *SnapshotWriter) write(records []*models.Record, marker string) error {
	if records == nil {
		// 空运行也产出合法的空数组而非null
		records = []*models.Record{}
	}
	csvFile, jsonFile := w.filePaths(marker)

	if err := w.writeCSV(csvFile, records); err != nil {
		return err
	}
	return w.writeJSON(jsonFile, records)
}

// writeCSV 写入行式表格
func (w *SnapshotWriter) writeCSV(path string, records []*models.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建CSV文件失败: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := []string{"name", "description", "url", "categories", "founders", "summary", "scraped_at", "status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("写入CSV表头失败: %w", err)
	}

	for _, r := range records {
		// 创始人列表在CSV单元格中序列化为JSON
		foundersJSON, err := json.Marshal(r.Founders)
		if err != nil {
			return fmt.Errorf("序列化创始人失败 [%s]: %w", r.IdentityKey, err)
		}

		row := []string{
			r.Name,
			r.Description,
			r.IdentityKey,
			strings.Join(r.Categories, ", "),
			string(foundersJSON),
			r.Summary,
			r.CapturedAt.Format(time.RFC3339),
			string(r.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("写入CSV行失败: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("刷新CSV失败: %w", err)
	}
	return nil
}

// writeJSON 写入树式文档
func (w *SnapshotWriter) writeJSON(path string, records []*models.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化JSON失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入JSON文件失败: %w", err)
	}
	return nil
}

// NewProgressBar 创建进度条
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
