package service_test

import (
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"orghub.app/api-server/internal/auth"
	"orghub.app/api-server/internal/service"
)

var _ = Describe("OrganizationService", func() {
	var (
		ctx      context.Context
		orgs     *memOrgStore
		admins   *memAdminStore
		docs     *memDocStore
		orgSvc   service.OrganizationService
		adminSvc service.AdminService
	)

	BeforeEach(func() {
		ctx = context.Background()
		orgs = newMemOrgStore()
		admins = newMemAdminStore()
		docs = newMemDocStore()
		orgSvc = service.NewOrganizationService(orgs, admins, docs)
		adminSvc = service.NewAdminService(admins, orgs)
	})

	Describe("Create", func() {
		It("creates the organization, its admin, and an empty backing collection", func() {
			record, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())
			Expect(record.OrganizationName).To(Equal("Acme Corp"))
			Expect(record.CollectionName).To(Equal("org_acme_corp"))
			Expect(record.AdminEmail).To(Equal("boss@acme.test"))
			Expect(record.ID).NotTo(BeZero())

			exists, err := docs.Exists(ctx, "org_acme_corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			count, err := docs.Count(ctx, "org_acme_corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("hashes the admin password", func() {
			record, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())

			org, err := orgs.GetByID(ctx, record.ID)
			Expect(err).NotTo(HaveOccurred())
			admin, err := admins.GetByID(ctx, org.AdminID)
			Expect(err).NotTo(HaveOccurred())

			Expect(admin.Password).NotTo(Equal("s3cret-pw"))
			Expect(auth.VerifyPassword("s3cret-pw", admin.Password)).To(BeTrue())
		})

		It("fails with ErrNameTaken on a duplicate name", func() {
			_, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())

			_, err = orgSvc.Create(ctx, "Acme Corp", "other@acme.test", "other-pw")
			Expect(err).To(MatchError(service.ErrNameTaken))
		})

		It("fails with ErrNameTaken when a distinct name collides on the collection", func() {
			_, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())

			_, err = orgSvc.Create(ctx, "ACME Corp", "other@acme.test", "other-pw")
			Expect(err).To(MatchError(service.ErrNameTaken))
		})

		It("fails with ErrEmailTaken when the admin email is already in use", func() {
			_, err := orgSvc.Create(ctx, "Acme Corp", "shared@x.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())

			_, err = orgSvc.Create(ctx, "Globex", "shared@x.test", "other-pw")
			Expect(err).To(MatchError(service.ErrEmailTaken))
		})

		It("gives distinct organizations distinct collections", func() {
			first, err := orgSvc.Create(ctx, "Acme Corp", "a@acme.test", "passw0rd")
			Expect(err).NotTo(HaveOccurred())
			second, err := orgSvc.Create(ctx, "Globex", "b@globex.test", "passw0rd")
			Expect(err).NotTo(HaveOccurred())

			Expect(first.CollectionName).NotTo(Equal(second.CollectionName))
		})
	})

	Describe("GetByName", func() {
		It("returns the composed record", func() {
			_, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())

			record, err := orgSvc.GetByName(ctx, "Acme Corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(record.CollectionName).To(Equal("org_acme_corp"))
			Expect(record.AdminEmail).To(Equal("boss@acme.test"))
		})

		It("fails with ErrOrgNotFound for an unknown name", func() {
			_, err := orgSvc.GetByName(ctx, "Nobody Inc")
			Expect(err).To(MatchError(service.ErrOrgNotFound))
		})

		It("tolerates a dangling admin reference", func() {
			record, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())

			org, err := orgs.GetByID(ctx, record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(admins.Delete(ctx, org.AdminID)).To(Succeed())

			got, err := orgSvc.GetByName(ctx, "Acme Corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.AdminEmail).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		var orgID int64

		BeforeEach(func() {
			record, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())
			orgID = record.ID
		})

		It("fails with ErrOrgNotFound for an unknown current name", func() {
			err := orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Nobody Inc",
				RequestingOrgID: orgID,
			})
			Expect(err).To(MatchError(service.ErrOrgNotFound))
		})

		It("fails with ErrNotOwner when the caller is a different organization", func() {
			newName := "Acme International"
			err := orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				NewName:         &newName,
				RequestingOrgID: orgID + 1,
			})
			Expect(err).To(MatchError(service.ErrNotOwner))

			// Nothing changed.
			record, err := orgSvc.GetByName(ctx, "Acme Corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(record.CollectionName).To(Equal("org_acme_corp"))
		})

		It("fails with ErrNameTaken when the new name belongs to another organization", func() {
			_, err := orgSvc.Create(ctx, "Globex", "b@globex.test", "passw0rd")
			Expect(err).NotTo(HaveOccurred())

			newName := "Globex"
			err = orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				NewName:         &newName,
				RequestingOrgID: orgID,
			})
			Expect(err).To(MatchError(service.ErrNameTaken))
		})

		It("migrates documents to the new collection and drops the old one", func() {
			for _, body := range []string{`{"k":"v1"}`, `{"k":"v2"}`, `{"k":"v3"}`} {
				_, err := orgSvc.InsertDocument(ctx, orgID, json.RawMessage(body))
				Expect(err).NotTo(HaveOccurred())
			}
			// A leftover provisioning marker must not be carried over.
			_, err := docs.Insert(ctx, "org_acme_corp", json.RawMessage(`{"_seed":true}`))
			Expect(err).NotTo(HaveOccurred())

			newName := "Acme International"
			err = orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				NewName:         &newName,
				RequestingOrgID: orgID,
			})
			Expect(err).NotTo(HaveOccurred())

			record, err := orgSvc.GetByName(ctx, "Acme International")
			Expect(err).NotTo(HaveOccurred())
			Expect(record.CollectionName).To(Equal("org_acme_international"))

			migrated, err := docs.List(ctx, "org_acme_international")
			Expect(err).NotTo(HaveOccurred())
			Expect(migrated).To(HaveLen(3))
			bodies := make([]string, len(migrated))
			for i, doc := range migrated {
				bodies[i] = string(doc.Body)
			}
			Expect(bodies).To(ConsistOf(`{"k":"v1"}`, `{"k":"v2"}`, `{"k":"v3"}`))

			exists, err := docs.Exists(ctx, "org_acme_corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())

			_, err = orgSvc.GetByName(ctx, "Acme Corp")
			Expect(err).To(MatchError(service.ErrOrgNotFound))
		})

		It("migrates documents whose seed marker is falsy", func() {
			_, err := orgSvc.InsertDocument(ctx, orgID, json.RawMessage(`{"k":"v"}`))
			Expect(err).NotTo(HaveOccurred())
			_, err = orgSvc.InsertDocument(ctx, orgID, json.RawMessage(`{"_seed":false,"payload":"real data"}`))
			Expect(err).NotTo(HaveOccurred())
			_, err = docs.Insert(ctx, "org_acme_corp", json.RawMessage(`{"_seed":true}`))
			Expect(err).NotTo(HaveOccurred())

			newName := "Acme International"
			err = orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				NewName:         &newName,
				RequestingOrgID: orgID,
			})
			Expect(err).NotTo(HaveOccurred())

			migrated, err := docs.List(ctx, "org_acme_international")
			Expect(err).NotTo(HaveOccurred())
			bodies := make([]string, len(migrated))
			for i, doc := range migrated {
				bodies[i] = string(doc.Body)
			}
			Expect(bodies).To(ConsistOf(`{"k":"v"}`, `{"_seed":false,"payload":"real data"}`))
		})

		It("assigns fresh identities to migrated documents", func() {
			inserted, err := orgSvc.InsertDocument(ctx, orgID, json.RawMessage(`{"k":"v"}`))
			Expect(err).NotTo(HaveOccurred())

			newName := "Acme International"
			err = orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				NewName:         &newName,
				RequestingOrgID: orgID,
			})
			Expect(err).NotTo(HaveOccurred())

			migrated, err := docs.List(ctx, "org_acme_international")
			Expect(err).NotTo(HaveOccurred())
			Expect(migrated).To(HaveLen(1))
			Expect(migrated[0].ID).NotTo(Equal(inserted.ID))
			Expect(migrated[0].Body).To(Equal(inserted.Body))
		})

		It("updates admin email and re-hashes a new password", func() {
			email := "new-boss@acme.test"
			password := "brand-new-pw"
			err := orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				Email:           &email,
				Password:        &password,
				RequestingOrgID: orgID,
			})
			Expect(err).NotTo(HaveOccurred())

			_, _, err = adminSvc.Authenticate(ctx, "new-boss@acme.test", "brand-new-pw")
			Expect(err).NotTo(HaveOccurred())
			_, _, err = adminSvc.Authenticate(ctx, "boss@acme.test", "s3cret-pw")
			Expect(err).To(MatchError(service.ErrBadCredentials))
		})

		It("fails with ErrEmailTaken when the new email belongs to another admin", func() {
			_, err := orgSvc.Create(ctx, "Globex", "b@globex.test", "passw0rd")
			Expect(err).NotTo(HaveOccurred())

			email := "b@globex.test"
			err = orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				Email:           &email,
				RequestingOrgID: orgID,
			})
			Expect(err).To(MatchError(service.ErrEmailTaken))

			// The original credentials still work.
			_, _, err = adminSvc.Authenticate(ctx, "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())
		})

		It("fails with ErrAdminMissing when the admin reference dangles", func() {
			org, err := orgs.GetByID(ctx, orgID)
			Expect(err).NotTo(HaveOccurred())
			Expect(admins.Delete(ctx, org.AdminID)).To(Succeed())

			email := "new@acme.test"
			err = orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				Email:           &email,
				RequestingOrgID: orgID,
			})
			Expect(err).To(MatchError(service.ErrAdminMissing))
		})

		It("treats an unchanged name as a no-op rename", func() {
			newName := "Acme Corp"
			err := orgSvc.Update(ctx, service.UpdateOrganizationParams{
				CurrentName:     "Acme Corp",
				NewName:         &newName,
				RequestingOrgID: orgID,
			})
			Expect(err).NotTo(HaveOccurred())

			record, err := orgSvc.GetByName(ctx, "Acme Corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(record.CollectionName).To(Equal("org_acme_corp"))
		})
	})

	Describe("Delete", func() {
		var orgID int64

		BeforeEach(func() {
			record, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())
			orgID = record.ID
		})

		It("removes the organization, its admin, and its collection", func() {
			org, err := orgs.GetByID(ctx, orgID)
			Expect(err).NotTo(HaveOccurred())
			adminID := org.AdminID

			Expect(orgSvc.Delete(ctx, "Acme Corp", orgID)).To(Succeed())

			_, err = orgSvc.GetByName(ctx, "Acme Corp")
			Expect(err).To(MatchError(service.ErrOrgNotFound))

			_, err = admins.GetByID(ctx, adminID)
			Expect(err).To(HaveOccurred())

			exists, err := docs.Exists(ctx, "org_acme_corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("fails with ErrNotOwner for a foreign caller and changes nothing", func() {
			err := orgSvc.Delete(ctx, "Acme Corp", orgID+1)
			Expect(err).To(MatchError(service.ErrNotOwner))

			record, err := orgSvc.GetByName(ctx, "Acme Corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(record.ID).To(Equal(orgID))

			exists, err := docs.Exists(ctx, "org_acme_corp")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("fails with ErrOrgNotFound for an unknown name", func() {
			err := orgSvc.Delete(ctx, "Nobody Inc", orgID)
			Expect(err).To(MatchError(service.ErrOrgNotFound))
		})
	})

	Describe("Documents", func() {
		var orgID int64

		BeforeEach(func() {
			record, err := orgSvc.Create(ctx, "Acme Corp", "boss@acme.test", "s3cret-pw")
			Expect(err).NotTo(HaveOccurred())
			orgID = record.ID
		})

		It("inserts into and lists the organization's own collection", func() {
			doc, err := orgSvc.InsertDocument(ctx, orgID, json.RawMessage(`{"k":"v"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.ID).NotTo(BeZero())

			listed, err := orgSvc.ListDocuments(ctx, orgID)
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(HaveLen(1))
			Expect(string(listed[0].Body)).To(Equal(`{"k":"v"}`))
		})

		It("fails with ErrOrgNotFound for an unknown organization", func() {
			_, err := orgSvc.InsertDocument(ctx, orgID+1, json.RawMessage(`{}`))
			Expect(err).To(MatchError(service.ErrOrgNotFound))
		})

		It("fails with ErrOrgNotFound when the collection vanished underneath", func() {
			// A concurrent rename or delete can drop the collection between
			// the organization lookup and the document operation.
			Expect(docs.Drop(ctx, "org_acme_corp")).To(Succeed())

			_, err := orgSvc.InsertDocument(ctx, orgID, json.RawMessage(`{"k":"v"}`))
			Expect(err).To(MatchError(service.ErrOrgNotFound))

			_, err = orgSvc.ListDocuments(ctx, orgID)
			Expect(err).To(MatchError(service.ErrOrgNotFound))
		})
	})
})
