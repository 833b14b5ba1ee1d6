package library

import (
	"context"
	"fmt"

	"lawyerconnect/models"

	"go.uber.org/zap"
)

type seedArticle struct {
	title, summary, content string
}

type seedCategory struct {
	name, description, icon string
	articles                []seedArticle
}

// SeedDefaults loads the starter library when no categories exist yet.
func (s *DefaultLibraryService) SeedDefaults(ctx context.Context) error {
	existing, err := s.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check library: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, c := range defaultLibrary() {
		category, err := s.CreateCategory(ctx, models.CreateCategoryRequest{Name: c.name, Description: c.description, Icon: c.icon})
		if err != nil {
			return err
		}
		for _, a := range c.articles {
			if _, err := s.CreateArticle(ctx, models.CreateArticleRequest{
				CategoryID: category.ID.Hex(),
				Title:      a.title,
				Summary:    a.summary,
				Content:    a.content,
			}); err != nil {
				return err
			}
		}
	}
	s.Logger.Info("legal library seeded", zap.Int("categories", len(defaultLibrary())))
	return nil
}

func defaultLibrary() []seedCategory {
	return []seedCategory{
		{
			name:        "Criminal Law",
			description: "Offences, police procedure and the rights of accused persons and victims.",
			icon:        "fas fa-gavel",
			articles: []seedArticle{{
				title:   "Filing an FIR",
				summary: "How to report a cognizable offence to the police.",
				content: generateFIRGuide(),
			}},
		},
		{
			name:        "Family Law",
			description: "Marriage, divorce, maintenance and custody.",
			icon:        "fas fa-users",
			articles: []seedArticle{{
				title:   "Maintenance for Spouses and Children",
				summary: "Who can claim maintenance and where to apply.",
				content: generateMaintenanceGuide(),
			}},
		},
		{
			name:        "Consumer Rights",
			description: "Defective goods, deficient services and consumer commissions.",
			icon:        "fas fa-shopping-cart",
			articles: []seedArticle{{
				title:   "Filing a Consumer Complaint",
				summary: "Steps to approach the consumer commission.",
				content: generateConsumerGuide(),
			}},
		},
		{
			name:        "Labor Law",
			description: "Wages, termination and workplace grievances.",
			icon:        "fas fa-briefcase",
			articles: []seedArticle{{
				title:   "Unpaid Wages",
				summary: "Recovering wages an employer has withheld.",
				content: generateWagesGuide(),
			}},
		},
	}
}

func generateFIRGuide() string {
	return `A First Information Report (FIR) is the written record the police make when they receive information about a cognizable offence.

1. Go to the police station with jurisdiction over the place of the offence. A Zero FIR can be filed at any station.
2. Give the facts: date, time, place, what happened and who was involved.
3. Read the recorded statement before signing it.
4. You are entitled to a free copy of the FIR.
5. If the police refuse to register it, send the complaint in writing to the Superintendent of Police or approach the Magistrate.`
}

func generateMaintenanceGuide() string {
	return `A wife, minor children and parents who cannot maintain themselves may claim maintenance from a person with sufficient means who neglects or refuses to support them.

1. The application is made before the Family Court or Magistrate where either party resides.
2. Interim maintenance can be ordered while the case is pending.
3. Keep records of income, expenses and the respondent's earnings.
4. An order can be enforced if payments stop.`
}

func generateConsumerGuide() string {
	return `A consumer who buys defective goods or receives deficient services can complain to the consumer commission.

1. Send a written notice to the seller or service provider first and keep proof of delivery.
2. File within two years of the cause of action.
3. The District Commission hears claims up to its pecuniary limit; higher claims go to the State or National Commission.
4. Attach invoices, warranty cards and correspondence.
5. Complaints can be filed online through the e-Daakhil portal.`
}

func generateWagesGuide() string {
	return `Employers must pay wages on time and may make only deductions the law allows.

1. Raise the issue in writing with the employer and keep a copy.
2. Collect salary slips, attendance records and bank statements.
3. Approach the Labour Commissioner or the authority under the wage legislation for your state.
4. Termination without notice or pay may also be challenged before the labour court.`
}
