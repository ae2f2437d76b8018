package services

import (
	"context"
	"net/http"
	"testing"

	catalogrepo "github.com/edulearn/edulearn-backend/internal/data/repos/catalog"
	enrollrepo "github.com/edulearn/edulearn-backend/internal/data/repos/enrollment"
	ratingrepo "github.com/edulearn/edulearn-backend/internal/data/repos/rating"
	"github.com/edulearn/edulearn-backend/internal/data/repos/testutil"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
)

// Enroll, complete, then request the certificate twice: the second request
// must return the same certificate id.
func TestEnrollCompleteCertificateFlow(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	ctx := context.Background()

	enrollments := enrollrepo.NewEnrollmentRepo(tx, log)
	courses := catalogrepo.NewCourseRepo(tx, log)
	resources := catalogrepo.NewResourceRepo(tx, log)
	enrollSvc := NewEnrollmentService(tx, log, enrollments, courses, resources)
	certSvc := NewCertificateService(tx, log, enrollments)

	instructor := testutil.SeedUser(t, tx, types.RoleInstructor)
	student := testutil.SeedUser(t, tx, types.RoleStudent)
	course := testutil.SeedCourse(t, tx, instructor)

	enrollment, err := enrollSvc.Enroll(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if enrollment.Progress != 0 || enrollment.Status != types.EnrollmentNotStarted {
		t.Fatalf("fresh enrollment got progress=%v status=%s", enrollment.Progress, enrollment.Status)
	}

	refreshed, err := courses.GetByID(ctx, tx, course.ID)
	if err != nil || refreshed == nil {
		t.Fatalf("reload course: %v", err)
	}
	if refreshed.StudentsEnrolled != 1 {
		t.Fatalf("students_enrolled = %d, want 1", refreshed.StudentsEnrolled)
	}

	if _, err := enrollSvc.Enroll(ctx, student.ID, course.ID); err == nil {
		t.Fatal("second enrollment for the same pair did not fail")
	} else if apierr.Status(err) != http.StatusConflict || apierr.Code(err) != "already_enrolled" {
		t.Fatalf("second enrollment failed with %d/%s, want 409/already_enrolled", apierr.Status(err), apierr.Code(err))
	}
	refreshed, err = courses.GetByID(ctx, tx, course.ID)
	if err != nil || refreshed == nil {
		t.Fatalf("reload course: %v", err)
	}
	if refreshed.StudentsEnrolled != 1 {
		t.Fatalf("students_enrolled = %d after rejected re-enroll, want 1", refreshed.StudentsEnrolled)
	}

	if _, err := certSvc.Issue(ctx, student.ID, course.ID); err == nil {
		t.Fatal("certificate issued before completion")
	}

	updated, err := enrollSvc.UpdateProgress(ctx, student.ID, course.ID, 100)
	if err != nil {
		t.Fatalf("update progress: %v", err)
	}
	if updated.Status != types.EnrollmentCompleted {
		t.Fatalf("status = %s, want completed", updated.Status)
	}

	first, err := certSvc.Issue(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("issue certificate: %v", err)
	}
	if first.CertificateID == "" || !first.CertificateIssued {
		t.Fatal("certificate fields not set on issue")
	}

	second, err := certSvc.Issue(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("reissue certificate: %v", err)
	}
	if second.CertificateID != first.CertificateID {
		t.Fatalf("certificate id changed on reissue: %s != %s", second.CertificateID, first.CertificateID)
	}
	if second.CertificateURL != first.CertificateURL {
		t.Fatalf("certificate url changed on reissue: %s != %s", second.CertificateURL, first.CertificateURL)
	}
}

// A progress write naming a resource from a different course must be
// rejected and leave the enrollment untouched.
func TestUpdateProgressByIDRejectsForeignResource(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	ctx := context.Background()

	enrollments := enrollrepo.NewEnrollmentRepo(tx, log)
	courses := catalogrepo.NewCourseRepo(tx, log)
	resources := catalogrepo.NewResourceRepo(tx, log)
	enrollSvc := NewEnrollmentService(tx, log, enrollments, courses, resources)

	instructor := testutil.SeedUser(t, tx, types.RoleInstructor)
	student := testutil.SeedUser(t, tx, types.RoleStudent)
	course := testutil.SeedCourse(t, tx, instructor)
	other := testutil.SeedCourse(t, tx, instructor)
	foreign := testutil.SeedResource(t, tx, other, 1)
	owned := testutil.SeedResource(t, tx, course, 1)
	enrollment := testutil.SeedEnrollment(t, tx, student, course, 20, types.EnrollmentInProgress)

	actor := Identity{UserID: student.ID, Role: types.RoleStudent}
	if _, err := enrollSvc.UpdateProgressByID(ctx, actor, enrollment.ID, 60, &foreign.ID); err == nil {
		t.Fatal("progress write accepted a resource from another course")
	} else if apierr.Status(err) != http.StatusNotFound || apierr.Code(err) != "resource_not_found" {
		t.Fatalf("got %d/%s, want 404/resource_not_found", apierr.Status(err), apierr.Code(err))
	}
	reloaded, err := enrollments.GetByID(ctx, tx, enrollment.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if reloaded.Progress != 20 {
		t.Fatalf("progress = %v after rejected write, want 20", reloaded.Progress)
	}

	updated, err := enrollSvc.UpdateProgressByID(ctx, actor, enrollment.ID, 60, &owned.ID)
	if err != nil {
		t.Fatalf("progress write with owned resource: %v", err)
	}
	if updated.Progress != 60 || updated.Status != types.EnrollmentInProgress {
		t.Fatalf("enrollment = %v/%s, want 60/in_progress", updated.Progress, updated.Status)
	}
}

// Two raters at 5 and 3 must cache 4.0/2 on the course; deleting the first
// rating must leave 3.0/1.
func TestRatingAggregateFlow(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	ctx := context.Background()

	enrollments := enrollrepo.NewEnrollmentRepo(tx, log)
	courses := catalogrepo.NewCourseRepo(tx, log)
	ratings := ratingrepo.NewRatingRepo(tx, log)
	ratingSvc := NewRatingService(tx, log, ratings, enrollments, courses)

	instructor := testutil.SeedUser(t, tx, types.RoleInstructor)
	userA := testutil.SeedUser(t, tx, types.RoleStudent)
	userB := testutil.SeedUser(t, tx, types.RoleStudent)
	course := testutil.SeedCourse(t, tx, instructor)
	testutil.SeedEnrollment(t, tx, userA, course, 100, types.EnrollmentCompleted)
	testutil.SeedEnrollment(t, tx, userB, course, 50, types.EnrollmentInProgress)

	ratingA, err := ratingSvc.AddOrUpdate(ctx, userA.ID, course.ID, 5, "excellent")
	if err != nil {
		t.Fatalf("rate as A: %v", err)
	}
	if !ratingA.IsVerified {
		t.Fatal("completed rater should be verified")
	}
	ratingB, err := ratingSvc.AddOrUpdate(ctx, userB.ID, course.ID, 3, "decent")
	if err != nil {
		t.Fatalf("rate as B: %v", err)
	}
	if ratingB.IsVerified {
		t.Fatal("in-progress rater should not be verified")
	}

	refreshed, err := courses.GetByID(ctx, tx, course.ID)
	if err != nil || refreshed == nil {
		t.Fatalf("reload course: %v", err)
	}
	if refreshed.Rating != 4.0 || refreshed.TotalRatings != 2 {
		t.Fatalf("cache = %v/%d, want 4.0/2", refreshed.Rating, refreshed.TotalRatings)
	}

	if err := ratingSvc.Delete(ctx, userA.ID, course.ID); err != nil {
		t.Fatalf("delete rating: %v", err)
	}
	refreshed, err = courses.GetByID(ctx, tx, course.ID)
	if err != nil || refreshed == nil {
		t.Fatalf("reload course: %v", err)
	}
	if refreshed.Rating != 3.0 || refreshed.TotalRatings != 1 {
		t.Fatalf("cache = %v/%d, want 3.0/1", refreshed.Rating, refreshed.TotalRatings)
	}
}
