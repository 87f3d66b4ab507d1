package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peartree/landing/internal/content"
	"github.com/peartree/landing/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrEmptyCatalog = errors.New("catalog has no pages")
)

// PageService 保存导入的落地页，并以内容页面的形式返回。
type PageService struct {
	db *gorm.DB
}

// NewPageService 创建 PageService 实例。
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// ImportResult 统计一次导入的变更数量。
type ImportResult struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Retired   int `json:"retired"`
}

// PageFilter 为 List 的筛选条件。
type PageFilter struct {
	Kind          content.Kind
	PublishedOnly bool
}

// Import 在一个事务内按 slug 写入目录中的每个页面，校验和未变化的页面保持不动。
// 目录中已不存在且仍在发布的页面会被下线并标记为 retired，不会删除。
func (s *PageService) Import(catalog *content.Catalog) (ImportResult, error) {
	var result ImportResult
	if catalog == nil || len(catalog.Pages) == 0 {
		return result, ErrEmptyCatalog
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		seen := make([]string, 0, len(catalog.Pages))
		for _, page := range catalog.Pages {
			document, err := content.Encode(page)
			if err != nil {
				return fmt.Errorf("encode %s: %w", page.Slug, err)
			}
			checksum := content.Checksum(document)
			seen = append(seen, page.Slug)

			var record db.LandingPage
			findErr := tx.Where("slug = ?", page.Slug).First(&record).Error
			switch {
			case errors.Is(findErr, gorm.ErrRecordNotFound):
				record = db.LandingPage{Slug: page.Slug, Published: true}
				applyPage(&record, page, document, checksum)
				if err := tx.Create(&record).Error; err != nil {
					return fmt.Errorf("create %s: %w", page.Slug, err)
				}
				result.Created++
				continue
			case findErr != nil:
				return findErr
			}

			if record.Checksum == checksum && !record.Retired {
				result.Unchanged++
				continue
			}
			if record.Retired {
				record.Retired = false
				record.Published = true
			}
			applyPage(&record, page, document, checksum)
			if err := tx.Save(&record).Error; err != nil {
				return fmt.Errorf("update %s: %w", page.Slug, err)
			}
			result.Updated++
		}

		// 只下线仍在发布的页面，管理员手动隐藏的页面保持原状
		retire := tx.Model(&db.LandingPage{}).
			Where("slug NOT IN ? AND retired = ? AND published = ?", seen, false, true).
			Updates(map[string]any{"published": false, "retired": true})
		if retire.Error != nil {
			return retire.Error
		}
		result.Retired = int(retire.RowsAffected)
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func applyPage(record *db.LandingPage, page *content.Page, document []byte, checksum string) {
	record.Kind = string(page.Kind)
	record.Town = page.Town
	record.Service = page.Service
	record.Title = page.Title
	record.Document = string(document)
	record.Checksum = checksum
}

// List 按类型、slug 顺序返回已入库页面。
func (s *PageService) List(filter PageFilter) ([]db.LandingPage, error) {
	query := s.db.Model(&db.LandingPage{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}

	var pages []db.LandingPage
	if err := query.Order("kind ASC, slug ASC").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// GetBySlug 查询页面并解码其文档。
func (s *PageService) GetBySlug(slug string) (*db.LandingPage, *content.Page, error) {
	var record db.LandingPage
	if err := s.db.Where("slug = ?", strings.Trim(slug, "/")).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPageNotFound
		}
		return nil, nil, err
	}

	page, err := content.Decode([]byte(record.Document))
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", record.Slug, err)
	}
	return &record, page, nil
}

// Published 按 List 顺序解码所有已发布页面。
func (s *PageService) Published() ([]*content.Page, error) {
	records, err := s.List(PageFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	pages := make([]*content.Page, 0, len(records))
	for _, record := range records {
		page, err := content.Decode([]byte(record.Document))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", record.Slug, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// SetPublished 切换页面发布状态，管理员操作会清除 retired 标记。
func (s *PageService) SetPublished(slug string, published bool) (*db.LandingPage, error) {
	var record db.LandingPage
	if err := s.db.Where("slug = ?", strings.Trim(slug, "/")).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	record.Published = published
	record.Retired = false
	if err := s.db.Save(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
