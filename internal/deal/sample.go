package deal

// Sample returns the bundled fixture of eight deals (ids "1".."8"). A fresh
// slice is returned on every call.
func Sample() []Deal {
	return []Deal{
		{
			ID: "1", DealName: "Enterprise Software License", Company: "TechCorp Solutions", Owner: "Sarah Johnson",
			Status: StatusNegotiation, Priority: PriorityHigh, Amount: 125000, Probability: 85,
			CloseDate: "2024-09-15", CreatedDate: "2024-07-10", LastActivity: "2024-08-15", Source: "Website",
			Tags:  []string{"Enterprise", "Software", "Recurring"},
			Notes: "Large enterprise deal with potential for expansion",
			Activities: []Activity{
				{ID: "1a", Type: ActivityMeeting, Description: "Demo presentation", Date: "2024-08-15", User: "Sarah Johnson"},
				{ID: "1b", Type: ActivityEmail, Description: "Sent proposal", Date: "2024-08-10", User: "Sarah Johnson"},
				{ID: "1c", Type: ActivityCall, Description: "Initial discovery call", Date: "2024-07-15", User: "Sarah Johnson"},
			},
		},
		{
			ID: "2", DealName: "Marketing Automation Platform", Company: "GrowthCo Inc", Owner: "Mike Chen",
			Status: StatusQualified, Priority: PriorityMedium, Amount: 45000, Probability: 60,
			CloseDate: "2024-10-01", CreatedDate: "2024-08-01", LastActivity: "2024-08-14", Source: "Cold Outreach",
			Tags:  []string{"Marketing", "SaaS"},
			Notes: "Mid-market company looking to scale marketing efforts",
			Activities: []Activity{
				{ID: "2a", Type: ActivityCall, Description: "Qualification call", Date: "2024-08-14", User: "Mike Chen"},
				{ID: "2b", Type: ActivityEmail, Description: "Follow-up email", Date: "2024-08-05", User: "Mike Chen"},
			},
		},
		{
			ID: "3", DealName: "Cloud Infrastructure Migration", Company: "DataFlow Systems", Owner: "Emily Rodriguez",
			Status: StatusProposal, Priority: PriorityCritical, Amount: 280000, Probability: 75,
			CloseDate: "2024-09-30", CreatedDate: "2024-06-15", LastActivity: "2024-08-16", Source: "Referral",
			Tags:  []string{"Cloud", "Infrastructure", "Migration"},
			Notes: "Complex migration project with multiple phases",
			Activities: []Activity{
				{ID: "3a", Type: ActivityMeeting, Description: "Technical requirements review", Date: "2024-08-16", User: "Emily Rodriguez"},
				{ID: "3b", Type: ActivityNote, Description: "Updated proposal with new requirements", Date: "2024-08-12", User: "Emily Rodriguez"},
				{ID: "3c", Type: ActivityMeeting, Description: "Stakeholder meeting", Date: "2024-08-08", User: "Emily Rodriguez"},
			},
		},
		{
			ID: "4", DealName: "CRM Implementation", Company: "StartupXYZ", Owner: "David Kim",
			Status: StatusNew, Priority: PriorityLow, Amount: 15000, Probability: 25,
			CloseDate: "2024-11-15", CreatedDate: "2024-08-10", LastActivity: "2024-08-10", Source: "Trade Show",
			Tags:  []string{"CRM", "Startup"},
			Notes: "Early stage startup, budget constraints",
			Activities: []Activity{
				{ID: "4a", Type: ActivityNote, Description: "Initial contact at trade show", Date: "2024-08-10", User: "David Kim"},
			},
		},
		{
			ID: "5", DealName: "Analytics Dashboard", Company: "RetailMax", Owner: "Lisa Wang",
			Status: StatusWon, Priority: PriorityMedium, Amount: 75000, Probability: 100,
			CloseDate: "2024-08-01", CreatedDate: "2024-05-20", LastActivity: "2024-08-01", Source: "Website",
			Tags:  []string{"Analytics", "Dashboard", "Retail"},
			Notes: "Successfully closed - implementation starting next month",
			Activities: []Activity{
				{ID: "5a", Type: ActivityNote, Description: "Contract signed", Date: "2024-08-01", User: "Lisa Wang"},
				{ID: "5b", Type: ActivityMeeting, Description: "Final negotiation", Date: "2024-07-28", User: "Lisa Wang"},
				{ID: "5c", Type: ActivityEmail, Description: "Contract review", Date: "2024-07-25", User: "Lisa Wang"},
			},
		},
		{
			ID: "6", DealName: "Security Audit Services", Company: "FinanceFirst Bank", Owner: "Alex Thompson",
			Status: StatusLost, Priority: PriorityHigh, Amount: 95000, Probability: 0,
			CloseDate: "2024-07-30", CreatedDate: "2024-05-01", LastActivity: "2024-07-30", Source: "Referral",
			Tags:  []string{"Security", "Audit", "Finance"},
			Notes: "Lost to competitor - price was the main factor",
			Activities: []Activity{
				{ID: "6a", Type: ActivityNote, Description: "Deal marked as lost", Date: "2024-07-30", User: "Alex Thompson"},
				{ID: "6b", Type: ActivityMeeting, Description: "Final presentation", Date: "2024-07-25", User: "Alex Thompson"},
				{ID: "6c", Type: ActivityEmail, Description: "Competitive analysis", Date: "2024-07-20", User: "Alex Thompson"},
			},
		},
		{
			ID: "7", DealName: "E-commerce Platform", Company: "FashionForward", Owner: "Rachel Green",
			Status: StatusQualified, Priority: PriorityMedium, Amount: 180000, Probability: 70,
			CloseDate: "2024-10-15", CreatedDate: "2024-07-01", LastActivity: "2024-08-16", Source: "Cold Outreach",
			Tags:  []string{"E-commerce", "Fashion", "Platform"},
			Notes: "Growing fashion brand looking to upgrade platform",
			Activities: []Activity{
				{ID: "7a", Type: ActivityCall, Description: "Technical discussion", Date: "2024-08-16", User: "Rachel Green"},
				{ID: "7b", Type: ActivityMeeting, Description: "Platform demo", Date: "2024-08-10", User: "Rachel Green"},
				{ID: "7c", Type: ActivityEmail, Description: "Requirements gathering", Date: "2024-07-20", User: "Rachel Green"},
			},
		},
		{
			ID: "8", DealName: "Mobile App Development", Company: "HealthTech Innovations", Owner: "James Wilson",
			Status: StatusProposal, Priority: PriorityHigh, Amount: 220000, Probability: 65,
			CloseDate: "2024-09-20", CreatedDate: "2024-06-10", LastActivity: "2024-08-15", Source: "Website",
			Tags:  []string{"Mobile", "Healthcare", "App"},
			Notes: "Healthcare app with regulatory compliance requirements",
			Activities: []Activity{
				{ID: "8a", Type: ActivityMeeting, Description: "Compliance review", Date: "2024-08-15", User: "James Wilson"},
				{ID: "8b", Type: ActivityEmail, Description: "Updated proposal", Date: "2024-08-12", User: "James Wilson"},
				{ID: "8c", Type: ActivityCall, Description: "Technical architecture discussion", Date: "2024-08-05", User: "James Wilson"},
			},
		},
	}
}
